package books

import (
	"time"

	"github.com/govalues/decimal"
)

// AccountType enumerates the broad classification of an account in the chart.
type AccountType string

const (
	// AccountTypeAssets increases on the debit side and holds resources owned by the company.
	AccountTypeAssets AccountType = "assets"
	// AccountTypeLiabilities increases on the credit side and tracks obligations.
	AccountTypeLiabilities AccountType = "liabilities"
	// AccountTypeRevenue represents inflows that increase equity.
	AccountTypeRevenue AccountType = "revenue"
	// AccountTypeExpenses represents outflows that decrease equity.
	AccountTypeExpenses AccountType = "expenses"
	// AccountTypeEquity captures the owner's residual interest in the company.
	AccountTypeEquity AccountType = "equity"
)

// Valid reports whether t is one of the closed set of account types.
// The type is always assigned explicitly, never inferred.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAssets, AccountTypeLiabilities, AccountTypeRevenue, AccountTypeExpenses, AccountTypeEquity:
		return true
	}
	return false
}

// EntityType identifies the kind of business entity a system-generated
// account is linked to.
type EntityType string

const (
	EntityTypeCustomer EntityType = "customer"
	EntityTypeSupplier EntityType = "supplier"
)

// Account is a node in the chart of accounts. A zero ParentID means the
// account is a root category. Children is derived from the parent index and
// is only populated on query results; persisted snapshots stay flat.
type Account struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	ParentID string          `json:"parent_id,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
	// IsSystemGenerated marks accounts created as the ledger counterpart of a
	// customer or supplier. Such accounts always carry both linked fields and
	// stay name-synchronized with their entity.
	IsSystemGenerated bool       `json:"is_system_generated,omitempty"`
	LinkedEntityID    string     `json:"linked_entity_id,omitempty"`
	LinkedEntityType  EntityType `json:"linked_entity_type,omitempty"`
	Children          []Account  `json:"children,omitempty"`
}

// Linked reports whether the account is the ledger counterpart of an entity.
func (a Account) Linked() bool {
	return a.IsSystemGenerated && a.LinkedEntityID != "" && a.LinkedEntityType != ""
}

// Customer is a business entity with at most one system-generated asset
// account in the chart.
type Customer struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	LastVisit      time.Time       `json:"last_visit,omitzero"`
}

// Supplier mirrors Customer on the liabilities side of the chart.
type Supplier struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	LastOrder      time.Time       `json:"last_order,omitzero"`
}
