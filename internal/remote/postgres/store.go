// Package postgres provides a pgx-backed remote store implementation. It is
// intentionally small and explicit: mapping between domain entities and SQL
// rows, scoped to a single company id. Migrations that create the expected
// schema live under db/migrations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chartkeep/chartkeep/internal/books"
	"github.com/chartkeep/chartkeep/internal/errs"
)

// Store holds a pgx connection pool and implements remote.Store for a fixed
// company id. All methods are safe for concurrent use.
type Store struct {
	pool      *pgxpool.Pool
	companyID string
}

// Open establishes a pgx pool using the provided connection string and
// verifies connectivity.
func Open(ctx context.Context, dsn, companyID string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool, companyID: companyID}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// --- Accounts ---

// FetchAccounts returns the company's accounts as flat rows ordered by code.
func (s *Store) FetchAccounts(ctx context.Context) ([]books.Account, error) {
	rows, err := s.pool.Query(ctx, `
        select id, code, name, type, coalesce(parent_id, ''), balance::text,
               is_system_generated, coalesce(linked_entity_id, ''), coalesce(linked_entity_type, '')
        from accounts
        where company_id = $1
        order by code
    `, s.companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]books.Account, 0)
	for rows.Next() {
		var a books.Account
		var balance, linkedType string
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.ParentID, &balance,
			&a.IsSystemGenerated, &a.LinkedEntityID, &linkedType); err != nil {
			return nil, err
		}
		if a.Balance, err = decimal.Parse(balance); err != nil {
			return nil, fmt.Errorf("parse balance for account %s: %w", a.ID, err)
		}
		a.LinkedEntityType = books.EntityType(linkedType)
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateAccount inserts an account row and returns the remote-issued id.
func (s *Store) CreateAccount(ctx context.Context, a books.Account) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, `
        insert into accounts (id, code, name, type, parent_id, balance, is_system_generated,
                              linked_entity_id, linked_entity_type, company_id)
        values (gen_random_uuid()::text, $1, $2, $3, nullif($4, ''), $5::numeric, $6, nullif($7, ''), nullif($8, ''), $9)
        returning id
    `, a.Code, a.Name, a.Type, a.ParentID, a.Balance.String(), a.IsSystemGenerated,
		a.LinkedEntityID, string(a.LinkedEntityType), s.companyID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateAccount overwrites the mutable columns of an account row.
func (s *Store) UpdateAccount(ctx context.Context, a books.Account) error {
	ct, err := s.pool.Exec(ctx, `
        update accounts
        set code=$1, name=$2, type=$3, parent_id=nullif($4, ''), balance=$5::numeric,
            is_system_generated=$6, linked_entity_id=nullif($7, ''), linked_entity_type=nullif($8, '')
        where id=$9 and company_id=$10
    `, a.Code, a.Name, a.Type, a.ParentID, a.Balance.String(), a.IsSystemGenerated,
		a.LinkedEntityID, string(a.LinkedEntityType), a.ID, s.companyID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row by id.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `delete from accounts where id=$1 and company_id=$2`, id, s.companyID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// --- Customers ---

func (s *Store) FetchCustomers(ctx context.Context) ([]books.Customer, error) {
	rows, err := s.pool.Query(ctx, `
        select id, name, coalesce(phone, ''), coalesce(email, ''), total_purchases::text, last_visit
        from customers
        where company_id = $1
        order by name
    `, s.companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]books.Customer, 0)
	for rows.Next() {
		var c books.Customer
		var total string
		var lastVisit *time.Time
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &total, &lastVisit); err != nil {
			return nil, err
		}
		if c.TotalPurchases, err = decimal.Parse(total); err != nil {
			return nil, fmt.Errorf("parse total_purchases for customer %s: %w", c.ID, err)
		}
		if lastVisit != nil {
			c.LastVisit = *lastVisit
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateCustomer(ctx context.Context, c books.Customer) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, `
        insert into customers (id, name, phone, email, total_purchases, last_visit, company_id)
        values (gen_random_uuid()::text, $1, nullif($2, ''), nullif($3, ''), $4::numeric, $5, $6)
        returning id
    `, c.Name, c.Phone, c.Email, c.TotalPurchases.String(), nullableTime(c.LastVisit), s.companyID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c books.Customer) error {
	ct, err := s.pool.Exec(ctx, `
        update customers
        set name=$1, phone=nullif($2, ''), email=nullif($3, ''), total_purchases=$4::numeric, last_visit=$5
        where id=$6 and company_id=$7
    `, c.Name, c.Phone, c.Email, c.TotalPurchases.String(), nullableTime(c.LastVisit), c.ID, s.companyID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `delete from customers where id=$1 and company_id=$2`, id, s.companyID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// --- Suppliers ---

func (s *Store) FetchSuppliers(ctx context.Context) ([]books.Supplier, error) {
	rows, err := s.pool.Query(ctx, `
        select id, name, coalesce(phone, ''), coalesce(email, ''), total_purchases::text, last_order
        from suppliers
        where company_id = $1
        order by name
    `, s.companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]books.Supplier, 0)
	for rows.Next() {
		var sp books.Supplier
		var total string
		var lastOrder *time.Time
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Phone, &sp.Email, &total, &lastOrder); err != nil {
			return nil, err
		}
		if sp.TotalPurchases, err = decimal.Parse(total); err != nil {
			return nil, fmt.Errorf("parse total_purchases for supplier %s: %w", sp.ID, err)
		}
		if lastOrder != nil {
			sp.LastOrder = *lastOrder
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

func (s *Store) CreateSupplier(ctx context.Context, sp books.Supplier) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx, `
        insert into suppliers (id, name, phone, email, total_purchases, last_order, company_id)
        values (gen_random_uuid()::text, $1, nullif($2, ''), nullif($3, ''), $4::numeric, $5, $6)
        returning id
    `, sp.Name, sp.Phone, sp.Email, sp.TotalPurchases.String(), nullableTime(sp.LastOrder), s.companyID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sp books.Supplier) error {
	ct, err := s.pool.Exec(ctx, `
        update suppliers
        set name=$1, phone=nullif($2, ''), email=nullif($3, ''), total_purchases=$4::numeric, last_order=$5
        where id=$6 and company_id=$7
    `, sp.Name, sp.Phone, sp.Email, sp.TotalPurchases.String(), nullableTime(sp.LastOrder), sp.ID, s.companyID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `delete from suppliers where id=$1 and company_id=$2`, id, s.companyID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err maps to a missing-row condition.
func IsNotFound(err error) bool {
	return errors.Is(err, errs.ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
