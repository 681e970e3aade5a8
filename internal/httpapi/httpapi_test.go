package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chartkeep/chartkeep/internal/books"
	cachemem "github.com/chartkeep/chartkeep/internal/cache/memory"
	"github.com/chartkeep/chartkeep/internal/chart"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type acctResp struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id"`
}

type custResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func setup(t *testing.T) (*chart.Store, http.Handler) {
	t.Helper()
	store := chart.New(chart.Config{Cache: cachemem.New(), Logger: testLogger()})
	store.Init(context.Background())
	h := New(store, testLogger()).Handler()
	return store, h
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostAccount_ValidAndInvalid(t *testing.T) {
	store, h := setup(t)
	assets, _ := store.FindAccountByName("Assets")

	// valid
	rec := doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{
		"code": "1300", "name": "Prepaid", "type": "assets", "parent_id": assets.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var ar acctResp
	if err := json.Unmarshal(rec.Body.Bytes(), &ar); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ar.ID == "" || ar.Name != "Prepaid" || ar.ParentID != assets.ID {
		t.Fatalf("unexpected account response: %+v", ar)
	}

	// missing name
	rec = doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"code": "1", "type": "assets"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400, got %d", rec.Code)
	}

	// invalid type
	rec = doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"name": "X", "type": "gold"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad type: expected 400, got %d", rec.Code)
	}

	// unknown parent
	rec = doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"name": "X", "type": "assets", "parent_id": "nope"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad parent: expected 422, got %d", rec.Code)
	}
	var er errResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if er.Code != "parent_not_found" {
		t.Fatalf("error code = %q, want parent_not_found", er.Code)
	}
}

func TestPostAccount_ContentTypeAndBody(t *testing.T) {
	_, h := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("wrong content type: expected 415, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", rec.Code)
	}

	// unknown fields are rejected
	rec = doJSON(t, h, http.MethodPost, "/v1/accounts", map[string]any{"name": "X", "type": "assets", "bogus": true})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: expected 400, got %d", rec.Code)
	}
}

func TestListAccounts(t *testing.T) {
	_, h := setup(t)

	rec := doJSON(t, h, http.MethodGet, "/v1/accounts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var roots []books.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &roots); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}
	foundChild := false
	for _, r := range roots {
		if len(r.Children) > 0 {
			foundChild = true
		}
	}
	if !foundChild {
		t.Fatal("nested listing has no children")
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/accounts/flat", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("flat: expected 200, got %d", rec.Code)
	}
	var flat []books.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &flat); err != nil {
		t.Fatalf("decode flat: %v", err)
	}
	if len(flat) <= len(roots) {
		t.Fatalf("flat listing should include descendants: %d accounts", len(flat))
	}
	for _, a := range flat {
		if len(a.Children) != 0 {
			t.Fatalf("flat account %s carries nested children", a.ID)
		}
	}
}

func TestPatchAndDeleteAccount(t *testing.T) {
	store, h := setup(t)
	cash, _ := store.FindAccountByName("Cash")

	rec := doJSON(t, h, http.MethodPatch, "/v1/accounts/"+cash.ID, map[string]any{"name": "Cash Drawer"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var ar acctResp
	if err := json.Unmarshal(rec.Body.Bytes(), &ar); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ar.Name != "Cash Drawer" {
		t.Fatalf("patched name = %q", ar.Name)
	}

	rec = doJSON(t, h, http.MethodPatch, "/v1/accounts/nope", map[string]any{"name": "X"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("patch missing: expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/v1/accounts/"+cash.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/v1/accounts/"+cash.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("double delete: expected 404, got %d", rec.Code)
	}
}

func TestCustomerLifecycle(t *testing.T) {
	store, h := setup(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/customers", map[string]any{"name": "Acme", "email": "acme@example.com"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("post: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var cr custResp
	if err := json.Unmarshal(rec.Body.Bytes(), &cr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cr.ID == "" || cr.Email != "acme@example.com" {
		t.Fatalf("unexpected customer response: %+v", cr)
	}

	// the linked ledger account is visible through the accounts API
	linked, ok := store.FindAccount(func(a books.Account) bool { return a.LinkedEntityID == cr.ID })
	if !ok {
		t.Fatal("customer created without linked account")
	}

	rec = doJSON(t, h, http.MethodPatch, "/v1/customers/"+cr.ID, map[string]any{"name": "Acme Ltd"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d", rec.Code)
	}
	renamed, _ := store.FindAccount(func(a books.Account) bool { return a.ID == linked.ID })
	if renamed.Name != "Acme Ltd" {
		t.Fatalf("linked account name = %q, want Acme Ltd", renamed.Name)
	}

	rec = doJSON(t, h, http.MethodPatch, "/v1/customers/"+cr.ID, map[string]any{"name": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty rename: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/v1/customers/"+cr.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	if _, ok := store.FindAccount(func(a books.Account) bool { return a.ID == linked.ID }); ok {
		t.Fatal("linked account survived customer delete")
	}
	rec = doJSON(t, h, http.MethodDelete, "/v1/customers/"+cr.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("double delete: expected 404, got %d", rec.Code)
	}
}

func TestSupplierValidation(t *testing.T) {
	_, h := setup(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/suppliers", map[string]any{"phone": "123"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/v1/suppliers", map[string]any{"name": "Initech"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("post: expected 201, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/suppliers", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var list []books.Supplier
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Initech" {
		t.Fatalf("unexpected supplier list: %+v", list)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	_, h := setup(t)

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz: expected 200, got %d", rec.Code)
	}

	// an uninitialized store is not ready
	cold := chart.New(chart.Config{Cache: cachemem.New(), Logger: testLogger()})
	hCold := New(cold, testLogger()).Handler()
	rec = doJSON(t, hCold, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("cold readyz: expected 503, got %d", rec.Code)
	}
}

type failingChecker struct{}

func (failingChecker) Ready(context.Context) error { return context.DeadlineExceeded }

func TestReadinessChecker(t *testing.T) {
	store := chart.New(chart.Config{Cache: cachemem.New(), Logger: testLogger()})
	store.Init(context.Background())
	h := New(store, testLogger(), failingChecker{}).Handler()

	rec := doJSON(t, h, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("failing checker: expected 503, got %d", rec.Code)
	}
}
