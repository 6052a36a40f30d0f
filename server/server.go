package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	v1 "github.com/homeshelf/homeshelf/api/v1"
	"github.com/homeshelf/homeshelf/config"
	"github.com/homeshelf/homeshelf/store"
	"github.com/homeshelf/homeshelf/version"
)

// StartServer starts the HTTP server
func StartServer(s *store.Store, handler *v1.Handler) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Opts.Host, config.Opts.Port),
		Handler: setupHandler(s, handler),
	}

	startHTTPServer(server)

	return server
}

func startHTTPServer(server *http.Server) {
	go func() {
		fmt.Println("Starting HTTP server in:", server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			fmt.Println("HTTP server error", err)
			os.Exit(1)
		}
	}()
}

// Shutdown drains in-flight requests before the process exits.
func Shutdown(ctx context.Context, server *http.Server) error {
	return server.Shutdown(ctx)
}

func setupHandler(s *store.Store, apiHandler *v1.Handler) http.Handler {
	router := mux.NewRouter()

	// Setup the API routes
	v1.Server(router, apiHandler)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
