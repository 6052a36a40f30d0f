package response // import "github.com/homeshelf/homeshelf/http/response"

import (
	"net/http"

	"github.com/homeshelf/homeshelf/log"
	"go.uber.org/zap"
)

// Builder collects status, headers and body before writing the response in
// one shot.
type Builder struct {
	w          http.ResponseWriter
	r          *http.Request
	statusCode int
	headers    map[string]string
	body       []byte
}

func New(w http.ResponseWriter, r *http.Request) *Builder {
	return &Builder{
		w:          w,
		r:          r,
		statusCode: http.StatusOK,
		headers: map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "DENY",
		},
	}
}

func (b *Builder) WithStatus(statusCode int) *Builder {
	b.statusCode = statusCode
	return b
}

func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers[key] = value
	return b
}

func (b *Builder) WithBody(body []byte) *Builder {
	b.body = body
	return b
}

func (b *Builder) Write() {
	for key, value := range b.headers {
		b.w.Header().Set(key, value)
	}
	b.w.WriteHeader(b.statusCode)

	if len(b.body) == 0 {
		return
	}
	if _, err := b.w.Write(b.body); err != nil {
		log.Error("Unable to write response body", zap.Error(err))
	}
}
