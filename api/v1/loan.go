package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/homeshelf/homeshelf/http/request"
	"github.com/homeshelf/homeshelf/http/response"
	"github.com/homeshelf/homeshelf/log"
)

// createLoanRequest is the input surface for loans: required fields and the
// loan period bounds are enforced here, the state layer trusts its callers.
type createLoanRequest struct {
	BookID     string `json:"bookId" validate:"required"`
	Borrower   string `json:"borrower" validate:"required"`
	LoanPeriod int    `json:"loanPeriod" validate:"required,min=1,max=4"`
}

func (h *Handler) listLoans(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, h.library.Loans())
}

func (h *Handler) createLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := decodeJSONBody(r, &req); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	loan := h.library.AddLoan(req.BookID, req.Borrower, req.LoanPeriod)
	log.Info("Loan created",
		zap.String("loan_id", loan.ID),
		zap.String("book_id", loan.BookID),
		zap.String("due_date", loan.DueDate))
	response.Created(w, r, loan)
}

func (h *Handler) returnLoan(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")
	if h.library.ReturnLoan(id) {
		log.Info("Loan returned", zap.String("loan_id", id))
	}
	// Returning an unknown loan is a no-op, not an error
	response.NoContent(w, r)
}
