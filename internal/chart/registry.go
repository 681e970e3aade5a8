package chart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/chartkeep/chartkeep/internal/books"
)

// CustomerInput carries the caller-supplied fields for a new customer.
type CustomerInput struct {
	Name  string
	Phone string
	Email string
}

// SupplierInput carries the caller-supplied fields for a new supplier.
type SupplierInput struct {
	Name  string
	Phone string
	Email string
}

// CustomerChanges is a partial update; nil fields are left untouched.
type CustomerChanges struct {
	Name           *string
	Phone          *string
	Email          *string
	TotalPurchases *decimal.Decimal
	LastVisit      *time.Time
}

// SupplierChanges is a partial update; nil fields are left untouched.
type SupplierChanges struct {
	Name           *string
	Phone          *string
	Email          *string
	TotalPurchases *decimal.Decimal
	LastOrder      *time.Time
}

// Customers returns a copy of the customer registry.
func (s *Store) Customers() []books.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]books.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Suppliers returns a copy of the supplier registry.
func (s *Store) Suppliers() []books.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]books.Supplier, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

// AddCustomer creates the customer and its system-generated asset account
// under the well-known customers parent. When that parent is missing the
// customer is still created and the gap is logged.
func (s *Store) AddCustomer(ctx context.Context, in CustomerInput) books.Customer {
	c := books.Customer{
		Name:  in.Name,
		Phone: in.Phone,
		Email: in.Email,
	}
	c.ID = s.issueCustomerID(ctx, c)

	s.mu.Lock()
	s.customers = append(s.customers, c)
	s.persistCustomersLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()

	s.createLinkedAccount(ctx, books.CustomersParentName, c.ID, c.Name, books.EntityTypeCustomer, books.AccountTypeAssets)
	return c
}

// AddSupplier mirrors AddCustomer on the liabilities side.
func (s *Store) AddSupplier(ctx context.Context, in SupplierInput) books.Supplier {
	sp := books.Supplier{
		Name:  in.Name,
		Phone: in.Phone,
		Email: in.Email,
	}
	sp.ID = s.issueSupplierID(ctx, sp)

	s.mu.Lock()
	s.suppliers = append(s.suppliers, sp)
	s.persistSuppliersLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()

	s.createLinkedAccount(ctx, books.SuppliersParentName, sp.ID, sp.Name, books.EntityTypeSupplier, books.AccountTypeLiabilities)
	return sp
}

// UpdateCustomer merges the provided fields. A name change cascades to the
// linked account so it stays name-synchronized.
func (s *Store) UpdateCustomer(ctx context.Context, id string, changes CustomerChanges) Outcome {
	s.mu.Lock()
	idx := -1
	for i := range s.customers {
		if s.customers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	c := &s.customers[idx]
	renamed := false
	if changes.Name != nil && *changes.Name != c.Name {
		c.Name = *changes.Name
		renamed = true
	}
	if changes.Phone != nil {
		c.Phone = *changes.Phone
	}
	if changes.Email != nil {
		c.Email = *changes.Email
	}
	if changes.TotalPurchases != nil {
		c.TotalPurchases = *changes.TotalPurchases
	}
	if changes.LastVisit != nil {
		c.LastVisit = *changes.LastVisit
	}
	updated := *c
	s.persistCustomersLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()
	s.enqueueCustomerUpdate(updated)

	if renamed {
		s.renameLinkedAccount(ctx, id, books.EntityTypeCustomer, updated.Name)
	}
	return OutcomeApplied
}

// UpdateSupplier mirrors UpdateCustomer.
func (s *Store) UpdateSupplier(ctx context.Context, id string, changes SupplierChanges) Outcome {
	s.mu.Lock()
	idx := -1
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	sp := &s.suppliers[idx]
	renamed := false
	if changes.Name != nil && *changes.Name != sp.Name {
		sp.Name = *changes.Name
		renamed = true
	}
	if changes.Phone != nil {
		sp.Phone = *changes.Phone
	}
	if changes.Email != nil {
		sp.Email = *changes.Email
	}
	if changes.TotalPurchases != nil {
		sp.TotalPurchases = *changes.TotalPurchases
	}
	if changes.LastOrder != nil {
		sp.LastOrder = *changes.LastOrder
	}
	updated := *sp
	s.persistSuppliersLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()
	s.enqueueSupplierUpdate(updated)

	if renamed {
		s.renameLinkedAccount(ctx, id, books.EntityTypeSupplier, updated.Name)
	}
	return OutcomeApplied
}

// DeleteCustomer removes the customer and cascade-deletes its linked account.
func (s *Store) DeleteCustomer(ctx context.Context, id string) Outcome {
	s.mu.Lock()
	idx := -1
	for i := range s.customers {
		if s.customers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	s.customers = append(s.customers[:idx], s.customers[idx+1:]...)
	s.persistCustomersLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()
	s.enqueueCustomerDelete(id)

	if acc, ok := s.linkedAccount(id, books.EntityTypeCustomer); ok {
		s.DeleteAccount(ctx, acc.ID)
	}
	return OutcomeApplied
}

// DeleteSupplier mirrors DeleteCustomer.
func (s *Store) DeleteSupplier(ctx context.Context, id string) Outcome {
	s.mu.Lock()
	idx := -1
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	s.suppliers = append(s.suppliers[:idx], s.suppliers[idx+1:]...)
	s.persistSuppliersLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()
	s.enqueueSupplierDelete(id)

	if acc, ok := s.linkedAccount(id, books.EntityTypeSupplier); ok {
		s.DeleteAccount(ctx, acc.ID)
	}
	return OutcomeApplied
}

// linkedAccount scans for the system-generated account back-referencing the
// entity.
func (s *Store) linkedAccount(entityID string, entityType books.EntityType) (books.Account, bool) {
	return s.FindAccount(func(a books.Account) bool {
		return a.IsSystemGenerated && a.LinkedEntityID == entityID && a.LinkedEntityType == entityType
	})
}

// createLinkedAccount inserts the entity's ledger counterpart under the
// well-known parent, located by name. A missing parent skips account
// creation without failing the entity create.
func (s *Store) createLinkedAccount(ctx context.Context, parentName, entityID, entityName string, entityType books.EntityType, accType books.AccountType) {
	parent, ok := s.FindAccountByName(parentName)
	if !ok {
		s.log.Warn("well-known parent account missing, entity has no ledger account",
			"parent", parentName, "entity_id", entityID)
		return
	}
	row := books.Account{
		Code:              linkedAccountCode(parent.Code, entityID),
		Name:              entityName,
		Type:              accType,
		ParentID:          parent.ID,
		IsSystemGenerated: true,
		LinkedEntityID:    entityID,
		LinkedEntityType:  entityType,
	}
	if _, outcome := s.addAccount(ctx, row); !outcome.Applied() {
		s.log.Warn("linked account creation skipped", "entity_id", entityID, "outcome", string(outcome))
	}
}

// renameLinkedAccount keeps the system-generated account's name in sync with
// its entity.
func (s *Store) renameLinkedAccount(ctx context.Context, entityID string, entityType books.EntityType, name string) {
	acc, ok := s.linkedAccount(entityID, entityType)
	if !ok {
		return
	}
	s.UpdateAccount(ctx, acc.ID, AccountChanges{Name: &name})
}

func (s *Store) issueCustomerID(ctx context.Context, c books.Customer) string {
	if s.remote == nil {
		return "customer-local-" + uuid.New().String()
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	id, err := s.remote.CreateCustomer(ctx, c)
	if err != nil {
		s.log.Warn("remote customer create failed, using local id", "name", c.Name, "err", err)
		return "customer-local-" + uuid.New().String()
	}
	return id
}

func (s *Store) issueSupplierID(ctx context.Context, sp books.Supplier) string {
	if s.remote == nil {
		return "supplier-local-" + uuid.New().String()
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	id, err := s.remote.CreateSupplier(ctx, sp)
	if err != nil {
		s.log.Warn("remote supplier create failed, using local id", "name", sp.Name, "err", err)
		return "supplier-local-" + uuid.New().String()
	}
	return id
}

func (s *Store) enqueueCustomerUpdate(c books.Customer) {
	if s.queue == nil {
		return
	}
	s.queue.enqueue(remoteOp{
		op:  "update-customer",
		key: c.ID,
		call: func(ctx context.Context) error {
			return s.remote.UpdateCustomer(ctx, c)
		},
	})
}

func (s *Store) enqueueCustomerDelete(id string) {
	if s.queue == nil {
		return
	}
	s.queue.enqueue(remoteOp{
		op:  "delete-customer",
		key: id,
		call: func(ctx context.Context) error {
			return s.remote.DeleteCustomer(ctx, id)
		},
	})
}

func (s *Store) enqueueSupplierUpdate(sp books.Supplier) {
	if s.queue == nil {
		return
	}
	s.queue.enqueue(remoteOp{
		op:  "update-supplier",
		key: sp.ID,
		call: func(ctx context.Context) error {
			return s.remote.UpdateSupplier(ctx, sp)
		},
	})
}

func (s *Store) enqueueSupplierDelete(id string) {
	if s.queue == nil {
		return
	}
	s.queue.enqueue(remoteOp{
		op:  "delete-supplier",
		key: id,
		call: func(ctx context.Context) error {
			return s.remote.DeleteSupplier(ctx, id)
		},
	})
}
