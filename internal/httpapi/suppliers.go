package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/chartkeep/chartkeep/internal/chart"
)

func (s *Server) listSuppliers(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, s.store.Suppliers())
}

func (s *Server) postSupplier(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req postSupplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}
	sp := s.store.AddSupplier(r.Context(), chart.SupplierInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	toJSON(w, http.StatusCreated, sp)
}

func (s *Server) patchSupplier(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req patchSupplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name != nil && *req.Name == "" {
		badRequest(w, "name cannot be empty")
		return
	}
	id := chi.URLParam(r, "id")
	outcome := s.store.UpdateSupplier(r.Context(), id, chart.SupplierChanges{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		TotalPurchases: req.TotalPurchases,
		LastOrder:      req.LastOrder,
	})
	if !outcome.Applied() {
		notFound(w)
		return
	}
	for _, sp := range s.store.Suppliers() {
		if sp.ID == id {
			toJSON(w, http.StatusOK, sp)
			return
		}
	}
	notFound(w)
}

func (s *Server) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.DeleteSupplier(r.Context(), id).Applied() {
		notFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
