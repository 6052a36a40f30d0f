package worker

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeshelf/homeshelf/config"
	"github.com/homeshelf/homeshelf/log"
	"github.com/homeshelf/homeshelf/lookup"
	"github.com/homeshelf/homeshelf/model"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func TestLookupPoolPublishesFilteredResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"0","total":"2","books":[
			{"title":"Go in Action","isbn13":"9780000000001"},
			{"title":"Rust in Action","isbn13":"999"}
		]}`))
	}))
	defer server.Close()

	client := lookup.NewClient(server.URL, 2*time.Second)
	guard := &lookup.Guard{}
	cache := lookup.NewCache()
	pool := NewLookupPool(client, guard, cache, 2*time.Second, 1)

	book := model.Book{ID: "book_1", Title: "Go in Action", ISBN13: "9780000000001"}
	pool.Push(model.LookupJob{Generation: guard.Next(), Book: book})

	require.Eventually(t, func() bool {
		_, found := cache.Latest(book.ID)
		return found
	}, 2*time.Second, 10*time.Millisecond)

	res, _ := cache.Latest(book.ID)
	require.NoError(t, res.Err)
	require.Len(t, res.Books, 1)
	assert.Equal(t, "Rust in Action", res.Books[0].Title)
}

func TestLookupPoolDropsStaleGeneration(t *testing.T) {
	requested := make(chan struct{}, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested <- struct{}{}
		w.Write([]byte(`{"error":"0","total":"1","books":[{"title":"Learning Go","isbn13":"1"}]}`))
	}))
	defer server.Close()

	client := lookup.NewClient(server.URL, 2*time.Second)
	guard := &lookup.Guard{}
	cache := lookup.NewCache()
	pool := NewLookupPool(client, guard, cache, 2*time.Second, 1)

	stale := guard.Next()
	// The user switched to another book before the job ran
	guard.Next()

	pool.Push(model.LookupJob{Generation: stale, Book: model.Book{ID: "book_1", Title: "Anything"}})

	// The job is skipped before it reaches the network
	assert.Never(t, func() bool {
		_, found := cache.Latest("book_1")
		return found
	}, 300*time.Millisecond, 20*time.Millisecond)
	assert.Empty(t, requested)
}

func TestLookupPoolPublishesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := lookup.NewClient(server.URL, 2*time.Second)
	guard := &lookup.Guard{}
	cache := lookup.NewCache()
	pool := NewLookupPool(client, guard, cache, 2*time.Second, 1)

	book := model.Book{ID: "book_1", Title: "Go in Action"}
	pool.Push(model.LookupJob{Generation: guard.Next(), Book: book})

	require.Eventually(t, func() bool {
		_, found := cache.Latest(book.ID)
		return found
	}, 2*time.Second, 10*time.Millisecond)

	res, _ := cache.Latest(book.ID)
	require.Error(t, res.Err)
	assert.Empty(t, res.Books)
}
