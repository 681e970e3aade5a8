package httpapi

import (
	"time"

	"github.com/govalues/decimal"

	"github.com/chartkeep/chartkeep/internal/books"
)

type postAccountRequest struct {
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Type     books.AccountType `json:"type"`
	ParentID string            `json:"parent_id,omitempty"`
	Balance  decimal.Decimal   `json:"balance"`
}

type patchAccountRequest struct {
	Code    *string            `json:"code,omitempty"`
	Name    *string            `json:"name,omitempty"`
	Type    *books.AccountType `json:"type,omitempty"`
	Balance *decimal.Decimal   `json:"balance,omitempty"`
}

type postCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type patchCustomerRequest struct {
	Name           *string          `json:"name,omitempty"`
	Phone          *string          `json:"phone,omitempty"`
	Email          *string          `json:"email,omitempty"`
	TotalPurchases *decimal.Decimal `json:"total_purchases,omitempty"`
	LastVisit      *time.Time       `json:"last_visit,omitempty"`
}

type postSupplierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type patchSupplierRequest struct {
	Name           *string          `json:"name,omitempty"`
	Phone          *string          `json:"phone,omitempty"`
	Email          *string          `json:"email,omitempty"`
	TotalPurchases *decimal.Decimal `json:"total_purchases,omitempty"`
	LastOrder      *time.Time       `json:"last_order,omitempty"`
}
