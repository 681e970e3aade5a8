// Package httpapi wires the HTTP surface of the chartkeep service. Handlers
// stay thin, delegating all business rules to the chart store.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/chartkeep/chartkeep/internal/chart"
)

// ReadyChecker is optionally implemented by backends to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Server wires handlers and middleware using Chi.
type Server struct {
	store *chart.Store
	ready []ReadyChecker
	log   *slog.Logger
	rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The ready
// checkers (remote store, cache) back the readiness probe.
func New(store *chart.Store, logger *slog.Logger, ready ...ReadyChecker) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		store: store,
		ready: ready,
		log:   logger,
		rt:    r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Accounts
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.Get("/v1/accounts/flat", s.listAccountsFlat)
	s.rt.Post("/v1/accounts", s.postAccount)
	s.rt.Patch("/v1/accounts/{id}", s.patchAccount)
	s.rt.Delete("/v1/accounts/{id}", s.deleteAccount)
	// Customers
	s.rt.Get("/v1/customers", s.listCustomers)
	s.rt.Post("/v1/customers", s.postCustomer)
	s.rt.Patch("/v1/customers/{id}", s.patchCustomer)
	s.rt.Delete("/v1/customers/{id}", s.deleteCustomer)
	// Suppliers
	s.rt.Get("/v1/suppliers", s.listSuppliers)
	s.rt.Post("/v1/suppliers", s.postSupplier)
	s.rt.Patch("/v1/suppliers/{id}", s.patchSupplier)
	s.rt.Delete("/v1/suppliers/{id}", s.deleteSupplier)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
