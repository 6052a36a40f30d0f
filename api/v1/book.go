package v1

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/homeshelf/homeshelf/config"
	"github.com/homeshelf/homeshelf/http/request"
	"github.com/homeshelf/homeshelf/http/response"
	"github.com/homeshelf/homeshelf/library"
	"github.com/homeshelf/homeshelf/log"
	"github.com/homeshelf/homeshelf/lookup"
	"github.com/homeshelf/homeshelf/model"
)

// bookView is a catalog entry plus its render-time loan flag.
type bookView struct {
	model.Book
	OnLoan bool `json:"onLoan"`
}

type similarView struct {
	Books []model.SimilarBook `json:"books"`
	Total int                 `json:"total"`
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	selection := request.QueryStringParam(r, "publisher", library.FilterAll)

	books := library.FilterByPublisher(h.library.Books(), selection)
	loans := h.library.Loans()

	views := make([]bookView, 0, len(books))
	for _, b := range books {
		views = append(views, bookView{Book: b, OnLoan: library.IsOnLoan(b.ID, loans)})
	}
	response.OK(w, r, views)
}

func (h *Handler) addBook(w http.ResponseWriter, r *http.Request) {
	var fields model.BookFields
	if err := decodeJSONBody(r, &fields); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book := h.library.AddBook(fields)
	log.Info("Book added", zap.String("book_id", book.ID), zap.String("title", book.Title))
	response.Created(w, r, book)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	var fields model.BookFields
	if err := decodeJSONBody(r, &fields); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book, ok := h.library.UpdateBook(id, fields)
	if !ok {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) selectBook(w http.ResponseWriter, r *http.Request) {
	h.library.SelectBook(request.RouteStringParam(r, "id"))
	response.OK(w, r, h.library.Books())
}

func (h *Handler) deleteSelected(w http.ResponseWriter, r *http.Request) {
	removed := h.library.DeleteSelected()
	log.Info("Selected books deleted", zap.Int("removed", removed))
	response.OK(w, r, map[string]int{"removed": removed})
}

func (h *Handler) availableBooks(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, h.library.AvailableBooks())
}

func (h *Handler) listPublishers(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, h.library.UniquePublishers())
}

// getBook serves the detail view. Entering it kicks off a background
// similar-books prefetch keyed to a fresh generation, so a result for a
// previously viewed book can never overtake this one.
func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.library.GetBook(request.RouteStringParam(r, "id"))
	if !ok {
		response.NotFound(w, r)
		return
	}

	if book.Title != "" {
		h.lookupPool.Push(model.LookupJob{Generation: h.guard.Next(), Book: book})
	}

	response.OK(w, r, bookView{Book: book, OnLoan: library.IsOnLoan(book.ID, h.library.Loans())})
}

func (h *Handler) similarBooks(w http.ResponseWriter, r *http.Request) {
	book, ok := h.library.GetBook(request.RouteStringParam(r, "id"))
	if !ok {
		response.NotFound(w, r)
		return
	}

	if book.Title == "" {
		response.OK(w, r, similarView{Books: []model.SimilarBook{}})
		return
	}

	if res, ok := h.cache.Latest(book.ID); ok {
		if res.Err != nil {
			response.BadGateway(w, r, res.Err)
			return
		}
		response.OK(w, r, similarView{Books: res.Books, Total: len(res.Books)})
		return
	}

	// No prefetched result, fetch inline
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(config.Opts.LookupTimeout)*time.Second)
	defer cancel()

	candidates, err := h.lookup.Search(ctx, book.Title)
	if err != nil {
		response.BadGateway(w, r, err)
		return
	}

	books := lookup.Similar(book, candidates)
	response.OK(w, r, similarView{Books: books, Total: len(books)})
}
