// Package memory provides an in-memory remote store used for development and
// tests. It mirrors the postgres adapter's behavior, including remote-issued
// ids, and supports failure injection so degraded-mode paths can be exercised.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/chartkeep/chartkeep/internal/books"
	"github.com/chartkeep/chartkeep/internal/errs"
)

// ErrUnavailable is returned from every call while the store is failing.
var ErrUnavailable = errors.New("remote store unavailable")

// Store is an in-memory implementation of remote.Store guarded by an RWMutex.
type Store struct {
	mu        sync.RWMutex
	failing   bool
	accounts  map[string]books.Account
	customers map[string]books.Customer
	suppliers map[string]books.Supplier
	// ops records the order in which write calls arrive, for queue tests.
	ops []string
}

// New constructs an empty in-memory remote store.
func New() *Store {
	return &Store{
		accounts:  make(map[string]books.Account),
		customers: make(map[string]books.Customer),
		suppliers: make(map[string]books.Supplier),
	}
}

// SetFailing toggles failure injection; while true every call returns
// ErrUnavailable.
func (s *Store) SetFailing(v bool) {
	s.mu.Lock()
	s.failing = v
	s.mu.Unlock()
}

// Ops returns a copy of the recorded write-call log.
func (s *Store) Ops() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ops))
	copy(out, s.ops)
	return out
}

// Seed helpers for tests.
func (s *Store) SeedAccount(a books.Account) {
	s.mu.Lock()
	s.accounts[a.ID] = a
	s.mu.Unlock()
}

func (s *Store) SeedCustomer(c books.Customer) {
	s.mu.Lock()
	s.customers[c.ID] = c
	s.mu.Unlock()
}

func (s *Store) SeedSupplier(sp books.Supplier) {
	s.mu.Lock()
	s.suppliers[sp.ID] = sp
	s.mu.Unlock()
}

// Ready reports the injected availability state.
func (s *Store) Ready(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return ErrUnavailable
	}
	return nil
}

// --- Accounts ---

func (s *Store) FetchAccounts(context.Context) ([]books.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return nil, ErrUnavailable
	}
	out := make([]books.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) CreateAccount(_ context.Context, a books.Account) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return "", ErrUnavailable
	}
	a.ID = uuid.New().String()
	a.Children = nil
	s.accounts[a.ID] = a
	s.ops = append(s.ops, "create-account:"+a.ID)
	return a.ID, nil
}

func (s *Store) UpdateAccount(_ context.Context, a books.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrUnavailable
	}
	if _, ok := s.accounts[a.ID]; !ok {
		return errs.ErrNotFound
	}
	a.Children = nil
	s.accounts[a.ID] = a
	s.ops = append(s.ops, "update-account:"+a.ID+":"+a.Name)
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrUnavailable
	}
	if _, ok := s.accounts[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.accounts, id)
	s.ops = append(s.ops, "delete-account:"+id)
	return nil
}

// --- Customers ---

func (s *Store) FetchCustomers(context.Context) ([]books.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return nil, ErrUnavailable
	}
	out := make([]books.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateCustomer(_ context.Context, c books.Customer) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return "", ErrUnavailable
	}
	c.ID = uuid.New().String()
	s.customers[c.ID] = c
	s.ops = append(s.ops, "create-customer:"+c.ID)
	return c.ID, nil
}

func (s *Store) UpdateCustomer(_ context.Context, c books.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrUnavailable
	}
	if _, ok := s.customers[c.ID]; !ok {
		return errs.ErrNotFound
	}
	s.customers[c.ID] = c
	s.ops = append(s.ops, "update-customer:"+c.ID+":"+c.Name)
	return nil
}

func (s *Store) DeleteCustomer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrUnavailable
	}
	if _, ok := s.customers[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.customers, id)
	s.ops = append(s.ops, "delete-customer:"+id)
	return nil
}

// --- Suppliers ---

func (s *Store) FetchSuppliers(context.Context) ([]books.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return nil, ErrUnavailable
	}
	out := make([]books.Supplier, 0, len(s.suppliers))
	for _, sp := range s.suppliers {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateSupplier(_ context.Context, sp books.Supplier) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return "", ErrUnavailable
	}
	sp.ID = uuid.New().String()
	s.suppliers[sp.ID] = sp
	s.ops = append(s.ops, "create-supplier:"+sp.ID)
	return sp.ID, nil
}

func (s *Store) UpdateSupplier(_ context.Context, sp books.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrUnavailable
	}
	if _, ok := s.suppliers[sp.ID]; !ok {
		return errs.ErrNotFound
	}
	s.suppliers[sp.ID] = sp
	s.ops = append(s.ops, "update-supplier:"+sp.ID+":"+sp.Name)
	return nil
}

func (s *Store) DeleteSupplier(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrUnavailable
	}
	if _, ok := s.suppliers[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.suppliers, id)
	s.ops = append(s.ops, "delete-supplier:"+id)
	return nil
}
