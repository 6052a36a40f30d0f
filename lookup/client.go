// Package lookup talks to the external book-search service used for
// "similar books" suggestions. The lookup is best-effort: every failure mode
// maps to an error the caller can show, never a crash, and an empty result
// set is not an error.
package lookup

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/homeshelf/homeshelf/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnavailable marks an upstream failure: network error, non-2xx status,
// malformed payload or an explicit error field in the response. It is
// distinct from the empty result set, which returns no error at all.
var ErrUnavailable = errors.New("book search service unavailable")

type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient builds a client for an itbook-style search endpoint. The timeout
// bounds the whole request; the upstream contract specifies none, so we add
// one defensively.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Error string              `json:"error"`
	Total string              `json:"total"`
	Books []model.SimilarBook `json:"books"`
}

// Search queries the service with a free-text title and returns the raw
// candidate list in upstream order. Callers filter with Similar. An empty
// title returns no candidates without hitting the network.
func (c *Client) Search(ctx context.Context, title string) ([]model.SimilarBook, error) {
	if title == "" {
		return nil, nil
	}

	endpoint := c.endpoint + "/search/" + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(ErrUnavailable, "unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(ErrUnavailable, "malformed payload")
	}

	// The service reports errors in-band; "0" means none.
	if payload.Error != "" && payload.Error != "0" {
		return nil, errors.Wrapf(ErrUnavailable, "service error %s", payload.Error)
	}

	return payload.Books, nil
}
