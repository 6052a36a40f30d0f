package v1

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/homeshelf/homeshelf/library"
	"github.com/homeshelf/homeshelf/lookup"
	"github.com/homeshelf/homeshelf/middleware"
	"github.com/homeshelf/homeshelf/worker"
)

type Handler struct {
	library    *library.Library
	lookup     *lookup.Client
	guard      *lookup.Guard
	cache      *lookup.Cache
	lookupPool worker.WorkPool
	validate   *validator.Validate
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(lib *library.Library, client *lookup.Client, guard *lookup.Guard, cache *lookup.Cache, pool worker.WorkPool) *Handler {
	return &Handler{
		library:    lib,
		lookup:     client,
		guard:      guard,
		cache:      cache,
		lookupPool: pool,
		validate:   validator.New(),
	}
}

func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware()
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Methods(http.MethodOptions)

	// Fixed paths before {id} so "available" and "selected" never match as ids
	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.addBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/available", handler.availableBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books/selected", handler.deleteSelected).Methods(http.MethodDelete)
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.updateBook).Methods(http.MethodPut)
	sr.HandleFunc("/books/{id}/select", handler.selectBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}/similar", handler.similarBooks).Methods(http.MethodGet)
	sr.HandleFunc("/publishers", handler.listPublishers).Methods(http.MethodGet)
	sr.HandleFunc("/loans", handler.listLoans).Methods(http.MethodGet)
	sr.HandleFunc("/loans", handler.createLoan).Methods(http.MethodPost)
	sr.HandleFunc("/loans/{id}", handler.returnLoan).Methods(http.MethodDelete)
}
