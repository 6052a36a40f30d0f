package library

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homeshelf/homeshelf/model"
)

func TestFilterByPublisherAll(t *testing.T) {
	books := []model.Book{
		{ID: "1", Publisher: "Manning"},
		{ID: "2", Publisher: "O'Reilly"},
		{ID: "3"},
	}

	// "All" is an identity pass-through: same content, same order
	assert.Equal(t, books, FilterByPublisher(books, FilterAll))
}

func TestFilterByPublisherExactMatch(t *testing.T) {
	books := []model.Book{
		{ID: "1", Publisher: "Manning"},
		{ID: "2", Publisher: "O'Reilly"},
		{ID: "3", Publisher: "Manning"},
	}

	filtered := FilterByPublisher(books, "Manning")
	assert.Equal(t, []model.Book{books[0], books[2]}, filtered)

	// Exact match only, no normalization
	assert.Empty(t, FilterByPublisher(books, "manning"))
	assert.Empty(t, FilterByPublisher(books, "Apress"))
}

func TestAvailableBooksExcludesEveryLoanedID(t *testing.T) {
	books := []model.Book{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	loans := []model.Loan{
		{ID: "loan_1", BookID: "1"},
		{ID: "loan_2", BookID: "3"},
		{ID: "loan_3", BookID: "missing"},
	}

	available := AvailableBooks(books, loans)
	assert.Equal(t, []model.Book{{ID: "2"}}, available)

	for _, b := range available {
		assert.False(t, IsOnLoan(b.ID, loans))
	}
}

func TestIsOnLoan(t *testing.T) {
	loans := []model.Loan{{ID: "loan_1", BookID: "42"}}

	assert.True(t, IsOnLoan("42", loans))
	assert.False(t, IsOnLoan("7", loans))
	assert.False(t, IsOnLoan("42", nil))
}
