package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/chartkeep/chartkeep/internal/chart"
)

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, s.store.Customers())
}

func (s *Server) postCustomer(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req postCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}
	c := s.store.AddCustomer(r.Context(), chart.CustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	toJSON(w, http.StatusCreated, c)
}

func (s *Server) patchCustomer(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req patchCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name != nil && *req.Name == "" {
		badRequest(w, "name cannot be empty")
		return
	}
	id := chi.URLParam(r, "id")
	outcome := s.store.UpdateCustomer(r.Context(), id, chart.CustomerChanges{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		TotalPurchases: req.TotalPurchases,
		LastVisit:      req.LastVisit,
	})
	if !outcome.Applied() {
		notFound(w)
		return
	}
	for _, c := range s.store.Customers() {
		if c.ID == id {
			toJSON(w, http.StatusOK, c)
			return
		}
	}
	notFound(w)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.DeleteCustomer(r.Context(), id).Applied() {
		notFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
