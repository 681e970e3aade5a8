// Package remote defines the port for the hosted relational backend. The
// remote store is the source of truth when reachable; every call site treats
// failure as a degradation to local-only persistence, never as a caller-facing
// error.
package remote

import (
	"context"

	"github.com/chartkeep/chartkeep/internal/books"
)

// Store is the full remote contract the chart store depends on. Accounts are
// returned flat (each row carrying its own parent id) ordered by code;
// Create* returns the remote-issued id.
type Store interface {
	FetchAccounts(ctx context.Context) ([]books.Account, error)
	CreateAccount(ctx context.Context, a books.Account) (string, error)
	UpdateAccount(ctx context.Context, a books.Account) error
	DeleteAccount(ctx context.Context, id string) error

	FetchCustomers(ctx context.Context) ([]books.Customer, error)
	CreateCustomer(ctx context.Context, c books.Customer) (string, error)
	UpdateCustomer(ctx context.Context, c books.Customer) error
	DeleteCustomer(ctx context.Context, id string) error

	FetchSuppliers(ctx context.Context) ([]books.Supplier, error)
	CreateSupplier(ctx context.Context, s books.Supplier) (string, error)
	UpdateSupplier(ctx context.Context, s books.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}
