// Package library owns the two persisted collections (books and loans) and
// the rules keeping them consistent with each other and with storage. All
// mutations go through explicit operations; every mutation re-serializes the
// affected collection and writes it back synchronously.
package library

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/homeshelf/homeshelf/log"
	"github.com/homeshelf/homeshelf/model"
	"github.com/homeshelf/homeshelf/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PlaceholderURL is stored when a book is created without a link.
const PlaceholderURL = "#"

// Library is the application state object: both collections, an init flag
// and the persistence boundary. Handlers run on concurrent goroutines, so
// every operation takes the mutex even though the app is logically
// single-user.
type Library struct {
	mu    sync.Mutex
	store *store.Store
	books []model.Book
	loans []model.Loan
	// Persistence writes are suppressed until Load completes, so a write
	// fired during startup can never clobber stored data with empty
	// defaults.
	initialized bool
	now         func() time.Time
}

func New(s *store.Store) *Library {
	return &Library{
		store: s,
		books: []model.Book{},
		loans: []model.Loan{},
		now:   time.Now,
	}
}

// Load reads both collections from storage: books first, then loans, then
// the library is marked initialized. A stored blob that does not parse is a
// hard error; starting with a half-read state would let the next write
// silently destroy the rest.
func (l *Library) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, found, err := l.store.LoadCollection(store.KeyBooks)
	if err != nil {
		return errors.Wrap(err, "failed to load books")
	}
	if found {
		if err := json.Unmarshal(raw, &l.books); err != nil {
			return errors.Wrap(err, "corrupt books collection")
		}
	}

	raw, found, err = l.store.LoadCollection(store.KeyLoans)
	if err != nil {
		return errors.Wrap(err, "failed to load loans")
	}
	if found {
		if err := json.Unmarshal(raw, &l.loans); err != nil {
			return errors.Wrap(err, "corrupt loans collection")
		}
	}

	l.initialized = true
	return nil
}

// Books returns a copy of the catalog.
func (l *Library) Books() []model.Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Book{}, l.books...)
}

// Loans returns a copy of the loan collection.
func (l *Library) Loans() []model.Loan {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Loan{}, l.loans...)
}

// GetBook looks up one book by id.
func (l *Library) GetBook(id string) (model.Book, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.books {
		if b.ID == id {
			return b, true
		}
	}
	return model.Book{}, false
}

// AddBook assigns a fresh id, appends the book unselected and persists the
// catalog. It always succeeds.
func (l *Library) AddBook(fields model.BookFields) model.Book {
	l.mu.Lock()
	defer l.mu.Unlock()

	book := bookFromFields(newID("book"), fields)
	l.books = append(l.books, book)
	l.persistBooks()
	return book
}

// UpdateBook replaces every field of the matching record except its id and
// resets the selected flag. A missing id is a silent no-op; the caller is
// expected to have validated existence.
func (l *Library) UpdateBook(id string, fields model.BookFields) (model.Book, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, b := range l.books {
		if b.ID != id {
			continue
		}
		updated := bookFromFields(id, fields)
		l.books[i] = updated
		l.persistBooks()
		return updated, true
	}
	return model.Book{}, false
}

// SelectBook toggles the selected flag on the matching record and clears it
// everywhere else, so the at-most-one-selected invariant holds by
// construction. An unknown id leaves the state unchanged.
func (l *Library) SelectBook(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	found := false
	next := make([]model.Book, len(l.books))
	for i, b := range l.books {
		selected := false
		if b.ID == id {
			found = true
			selected = !b.Selected
		}
		b.Selected = selected
		next[i] = b
	}
	if !found {
		return
	}
	l.books = next
	l.persistBooks()
}

// DeleteSelected removes every record currently flagged selected. At most one
// book can be selected, but the operation is defined over the set. It returns
// the number of removed records.
func (l *Library) DeleteSelected() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.books[:0]
	removed := 0
	for _, b := range l.books {
		if b.Selected {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	if removed == 0 {
		return 0
	}
	l.books = kept
	l.persistBooks()
	return removed
}

// UniquePublishers returns the distinct non-empty publisher values. Order is
// not significant to the caller (a dropdown list).
func (l *Library) UniquePublishers() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]struct{})
	publishers := []string{}
	for _, b := range l.books {
		if b.Publisher == "" {
			continue
		}
		if _, ok := seen[b.Publisher]; ok {
			continue
		}
		seen[b.Publisher] = struct{}{}
		publishers = append(publishers, b.Publisher)
	}
	return publishers
}

// AddLoan computes the due date, snapshots the book's current title and
// appends the loan. It succeeds even when bookID matches no catalog entry;
// the title snapshot is then empty.
func (l *Library) AddLoan(bookID, borrower string, loanPeriodWeeks int) model.Loan {
	l.mu.Lock()
	defer l.mu.Unlock()

	title := ""
	for _, b := range l.books {
		if b.ID == bookID {
			title = b.Title
			break
		}
	}

	loan := model.Loan{
		ID:         newID("loan"),
		BookID:     bookID,
		Borrower:   borrower,
		LoanPeriod: loanPeriodWeeks,
		DueDate:    DueDate(l.now(), loanPeriodWeeks),
		BookTitle:  title,
	}
	l.loans = append(l.loans, loan)
	l.persistLoans()
	return loan
}

// ReturnLoan removes the matching loan record. Missing id is a no-op.
func (l *Library) ReturnLoan(loanID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, loan := range l.loans {
		if loan.ID == loanID {
			l.loans = append(l.loans[:i], l.loans[i+1:]...)
			l.persistLoans()
			return true
		}
	}
	return false
}

// AvailableBooks returns every book not referenced by any current loan.
func (l *Library) AvailableBooks() []model.Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	return AvailableBooks(l.books, l.loans)
}

// DueDate is calendar-day addition in the local calendar: the due date of a
// loan taken out on day d for n weeks is d + 7n days, date only.
func DueDate(d time.Time, loanPeriodWeeks int) string {
	return d.AddDate(0, 0, loanPeriodWeeks*7).Format("2006-01-02")
}

func bookFromFields(id string, fields model.BookFields) model.Book {
	url := fields.URL
	if url == "" {
		url = PlaceholderURL
	}
	return model.Book{
		ID:              id,
		Title:           fields.Title,
		Author:          fields.Author,
		Publisher:       fields.Publisher,
		PublicationYear: fields.PublicationYear,
		Language:        fields.Language,
		Pages:           fields.Pages,
		Price:           fields.Price,
		Image:           fields.Image,
		URL:             url,
		ISBN13:          fields.ISBN13,
		Selected:        false,
	}
}

// newID builds a unique record id from a millisecond timestamp and a random
// suffix. Ids are never reused or recomputed.
func newID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// persistBooks and persistLoans run with l.mu held. A failed write is logged
// and the in-memory state stays authoritative; there is no retry.

func (l *Library) persistBooks() {
	if !l.initialized {
		return
	}
	raw, err := json.Marshal(l.books)
	if err != nil {
		log.Error("Failed to serialize books", zap.Error(err))
		return
	}
	if err := l.store.SaveCollection(store.KeyBooks, raw); err != nil {
		log.Error("Failed to persist books", zap.Error(err))
	}
}

func (l *Library) persistLoans() {
	if !l.initialized {
		return
	}
	raw, err := json.Marshal(l.loans)
	if err != nil {
		log.Error("Failed to serialize loans", zap.Error(err))
		return
	}
	if err := l.store.SaveCollection(store.KeyLoans, raw); err != nil {
		log.Error("Failed to persist loans", zap.Error(err))
	}
}
