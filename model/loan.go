package model

// Loan records one book currently lent to a borrower.
//
// BookTitle is a snapshot of the book's title taken when the loan is created.
// It does not track later title edits, and it is the only trace left when the
// referenced book is deleted while on loan.
type Loan struct {
	ID         string `json:"id"`
	BookID     string `json:"bookId"`
	Borrower   string `json:"borrower"`
	LoanPeriod int    `json:"loanPeriod"`
	// DueDate is a date-only ISO string (YYYY-MM-DD), local calendar.
	DueDate   string `json:"dueDate"`
	BookTitle string `json:"bookTitle"`
}
