package v1

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeshelf/homeshelf/config"
	"github.com/homeshelf/homeshelf/library"
	"github.com/homeshelf/homeshelf/log"
	"github.com/homeshelf/homeshelf/lookup"
	"github.com/homeshelf/homeshelf/model"
	"github.com/homeshelf/homeshelf/store"
	"github.com/homeshelf/homeshelf/store/db"
	"github.com/homeshelf/homeshelf/worker"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func newTestServer(t *testing.T, upstream http.HandlerFunc) (*httptest.Server, *library.Library) {
	t.Helper()

	d, err := db.NewDB(filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	require.NoError(t, d.Migrate(context.Background()))
	t.Cleanup(func() { d.Close() })

	lib := library.New(store.NewStore(d))
	require.NoError(t, lib.Load())

	if upstream == nil {
		upstream = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"0","total":"0","books":[]}`))
		}
	}
	search := httptest.NewServer(upstream)
	t.Cleanup(search.Close)

	client := lookup.NewClient(search.URL, 2*time.Second)
	guard := &lookup.Guard{}
	cache := lookup.NewCache()
	pool := worker.NewLookupPool(client, guard, cache, 2*time.Second, 1)

	router := mux.NewRouter()
	Server(router, NewHandler(lib, client, guard, cache, pool))

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, lib
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func doRequest(t *testing.T, method, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAddAndFilterBooks(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/v1/books", `{"title":"Go in Action","publisher":"Manning"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Book
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Selected)

	postJSON(t, ts.URL+"/api/v1/books", `{"title":"The Go Programming Language","publisher":"Addison-Wesley"}`).Body.Close()

	var all []bookView
	decodeBody(t, doRequest(t, http.MethodGet, ts.URL+"/api/v1/books"), &all)
	require.Len(t, all, 2)

	var filtered []bookView
	decodeBody(t, doRequest(t, http.MethodGet, ts.URL+"/api/v1/books?publisher=Manning"), &filtered)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Go in Action", filtered[0].Title)

	var publishers []string
	decodeBody(t, doRequest(t, http.MethodGet, ts.URL+"/api/v1/publishers"), &publishers)
	assert.ElementsMatch(t, []string{"Manning", "Addison-Wesley"}, publishers)
}

func TestSelectToggle(t *testing.T) {
	ts, lib := newTestServer(t, nil)
	b := lib.AddBook(model.BookFields{Title: "A"})
	lib.AddBook(model.BookFields{Title: "B"})

	var books []model.Book
	resp := postJSON(t, ts.URL+"/api/v1/books/"+b.ID+"/select", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &books)
	assert.True(t, books[0].Selected)
	assert.False(t, books[1].Selected)

	// Toggling again deselects, leaving no selection at all
	resp = postJSON(t, ts.URL+"/api/v1/books/"+b.ID+"/select", "")
	decodeBody(t, resp, &books)
	for _, book := range books {
		assert.False(t, book.Selected)
	}
}

func TestDeleteSelected(t *testing.T) {
	ts, lib := newTestServer(t, nil)
	b := lib.AddBook(model.BookFields{Title: "Doomed"})
	lib.AddBook(model.BookFields{Title: "Spared"})
	lib.SelectBook(b.ID)

	resp := doRequest(t, http.MethodDelete, ts.URL+"/api/v1/books/selected")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string]int
	decodeBody(t, resp, &result)
	assert.Equal(t, 1, result["removed"])
	assert.Len(t, lib.Books(), 1)
}

func TestCreateLoanValidation(t *testing.T) {
	ts, lib := newTestServer(t, nil)
	b := lib.AddBook(model.BookFields{Title: "A"})

	for _, body := range []string{
		`{"bookId":"` + b.ID + `","borrower":"Alex","loanPeriod":5}`,
		`{"bookId":"` + b.ID + `","borrower":"Alex","loanPeriod":0}`,
		`{"bookId":"` + b.ID + `","borrower":"","loanPeriod":2}`,
		`{"borrower":"Alex","loanPeriod":2}`,
	} {
		resp := postJSON(t, ts.URL+"/api/v1/loans", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %s", body)
		resp.Body.Close()
	}
	assert.Empty(t, lib.Loans())
}

func TestLoanLifecycle(t *testing.T) {
	ts, lib := newTestServer(t, nil)
	b := lib.AddBook(model.BookFields{Title: "Lent Out"})

	resp := postJSON(t, ts.URL+"/api/v1/loans", `{"bookId":"`+b.ID+`","borrower":"Alex","loanPeriod":2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var loan model.Loan
	decodeBody(t, resp, &loan)
	assert.Equal(t, "Lent Out", loan.BookTitle)
	assert.Equal(t, library.DueDate(time.Now(), 2), loan.DueDate)

	var available []model.Book
	decodeBody(t, doRequest(t, http.MethodGet, ts.URL+"/api/v1/books/available"), &available)
	assert.Empty(t, available)

	var books []bookView
	decodeBody(t, doRequest(t, http.MethodGet, ts.URL+"/api/v1/books"), &books)
	require.Len(t, books, 1)
	assert.True(t, books[0].OnLoan)

	resp = doRequest(t, http.MethodDelete, ts.URL+"/api/v1/loans/"+loan.ID)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	decodeBody(t, doRequest(t, http.MethodGet, ts.URL+"/api/v1/books/available"), &available)
	require.Len(t, available, 1)
}

func TestSimilarBooks(t *testing.T) {
	ts, lib := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"0","total":"3","books":[
			{"title":"Go in Action","isbn13":"9780000000001"},
			{"title":"GO IN ACTION","isbn13":"999"},
			{"title":"Rust in Action","isbn13":"999"}
		]}`))
	})
	b := lib.AddBook(model.BookFields{Title: "Go in Action", ISBN13: "9780000000001"})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/v1/books/"+b.ID+"/similar")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var similar similarView
	decodeBody(t, resp, &similar)
	require.Len(t, similar.Books, 1)
	assert.Equal(t, "Rust in Action", similar.Books[0].Title)
}

func TestSimilarBooksUpstreamFailure(t *testing.T) {
	ts, lib := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	b := lib.AddBook(model.BookFields{Title: "Go in Action"})

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/v1/books/"+b.ID+"/similar")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSimilarBooksUnknownBook(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/v1/books/book_missing/similar")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
