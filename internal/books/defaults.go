package books

import "github.com/govalues/decimal"

// Well-known parent accounts for system-generated entity accounts. Entity
// auto-linking looks these up by name; renaming them disables auto-linking.
const (
	CustomersParentName = "Customers"
	SuppliersParentName = "Suppliers"
)

// DefaultChart returns the fixed chart of accounts seeded into an empty
// store: four root categories with representative children and preset
// balances. IDs are stable well-known slugs so seeding is idempotent and
// tests can reference nodes directly.
func DefaultChart() []Account {
	return []Account{
		{ID: "acc-assets", Code: "1000", Name: "Assets", Type: AccountTypeAssets, Balance: dec(0)},
		{ID: "acc-cash", Code: "1010", Name: "Cash", Type: AccountTypeAssets, ParentID: "acc-assets", Balance: dec(5000)},
		{ID: "acc-bank", Code: "1020", Name: "Bank", Type: AccountTypeAssets, ParentID: "acc-assets", Balance: dec(12500)},
		{ID: "acc-inventory", Code: "1100", Name: "Inventory", Type: AccountTypeAssets, ParentID: "acc-assets", Balance: dec(8000)},
		{ID: "acc-customers", Code: "1200", Name: CustomersParentName, Type: AccountTypeAssets, ParentID: "acc-assets", Balance: dec(0)},
		{ID: "acc-liabilities", Code: "2000", Name: "Liabilities", Type: AccountTypeLiabilities, Balance: dec(0)},
		{ID: "acc-suppliers", Code: "2100", Name: SuppliersParentName, Type: AccountTypeLiabilities, ParentID: "acc-liabilities", Balance: dec(0)},
		{ID: "acc-loans", Code: "2200", Name: "Loans", Type: AccountTypeLiabilities, ParentID: "acc-liabilities", Balance: dec(4000)},
		{ID: "acc-revenue", Code: "4000", Name: "Revenue", Type: AccountTypeRevenue, Balance: dec(0)},
		{ID: "acc-sales", Code: "4010", Name: "Sales", Type: AccountTypeRevenue, ParentID: "acc-revenue", Balance: dec(0)},
		{ID: "acc-other-income", Code: "4090", Name: "Other Income", Type: AccountTypeRevenue, ParentID: "acc-revenue", Balance: dec(0)},
		{ID: "acc-expenses", Code: "5000", Name: "Expenses", Type: AccountTypeExpenses, Balance: dec(0)},
		{ID: "acc-rent", Code: "5010", Name: "Rent", Type: AccountTypeExpenses, ParentID: "acc-expenses", Balance: dec(0)},
		{ID: "acc-salaries", Code: "5020", Name: "Salaries", Type: AccountTypeExpenses, ParentID: "acc-expenses", Balance: dec(0)},
		{ID: "acc-utilities", Code: "5030", Name: "Utilities", Type: AccountTypeExpenses, ParentID: "acc-expenses", Balance: dec(0)},
	}
}

func dec(units int64) decimal.Decimal {
	return decimal.MustNew(units, 0)
}
