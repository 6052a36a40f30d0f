package library

import (
	"github.com/homeshelf/homeshelf/model"
)

// Derived views are pure functions over the two collections. They are
// recomputed on every call, never cached: caching would have to be
// invalidated on every mutation of either collection for no measurable gain
// at this scale.

// FilterAll is the selection value meaning "no publisher filter".
const FilterAll = "All"

// FilterByPublisher returns the books matching the selection, preserving
// input order. The FilterAll selection passes the input through unchanged.
func FilterByPublisher(books []model.Book, selection string) []model.Book {
	if selection == FilterAll {
		return books
	}
	filtered := []model.Book{}
	for _, b := range books {
		if b.Publisher == selection {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// AvailableBooks returns every book whose id appears in no loan.
func AvailableBooks(books []model.Book, loans []model.Loan) []model.Book {
	loaned := make(map[string]struct{}, len(loans))
	for _, loan := range loans {
		loaned[loan.BookID] = struct{}{}
	}

	available := []model.Book{}
	for _, b := range books {
		if _, ok := loaned[b.ID]; !ok {
			available = append(available, b)
		}
	}
	return available
}

// IsOnLoan reports whether any loan references the given book.
func IsOnLoan(bookID string, loans []model.Loan) bool {
	for _, loan := range loans {
		if loan.BookID == bookID {
			return true
		}
	}
	return false
}
