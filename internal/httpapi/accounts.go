package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/chartkeep/chartkeep/internal/books"
	"github.com/chartkeep/chartkeep/internal/chart"
)

// listAccounts returns root accounts with nested children.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, s.store.Accounts(r.Context()))
}

// listAccountsFlat returns every account in pre-order, for selection lists.
func (s *Server) listAccountsFlat(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, s.store.AccountsFlat())
}

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req postAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}
	if !req.Type.Valid() {
		badRequest(w, "invalid account type")
		return
	}
	acc, outcome := s.store.AddAccount(r.Context(), chart.AccountInput{
		Code:     req.Code,
		Name:     req.Name,
		Type:     req.Type,
		ParentID: req.ParentID,
		Balance:  req.Balance,
	})
	if outcome == chart.OutcomeParentNotFound {
		unprocessable(w, "parent account not found", "parent_not_found")
		return
	}
	toJSON(w, http.StatusCreated, acc)
}

func (s *Server) patchAccount(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req patchAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		badRequest(w, "invalid account type")
		return
	}
	id := chi.URLParam(r, "id")
	outcome := s.store.UpdateAccount(r.Context(), id, chart.AccountChanges{
		Code:    req.Code,
		Name:    req.Name,
		Type:    req.Type,
		Balance: req.Balance,
	})
	if !outcome.Applied() {
		notFound(w)
		return
	}
	acc, ok := s.store.FindAccount(func(a books.Account) bool { return a.ID == id })
	if !ok {
		notFound(w)
		return
	}
	toJSON(w, http.StatusOK, acc)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.DeleteAccount(r.Context(), id).Applied() {
		notFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
