package books

import "testing"

func TestAccountTypeValid(t *testing.T) {
	for _, typ := range []AccountType{AccountTypeAssets, AccountTypeLiabilities, AccountTypeRevenue, AccountTypeExpenses, AccountTypeEquity} {
		if !typ.Valid() {
			t.Fatalf("%s should be valid", typ)
		}
	}
	for _, bad := range []AccountType{"", "asset", "Assets", "gold"} {
		if bad.Valid() {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}

func TestDefaultChart(t *testing.T) {
	rows := DefaultChart()

	ids := map[string]AccountType{}
	for _, r := range rows {
		if _, dup := ids[r.ID]; dup {
			t.Fatalf("duplicate id %s in default chart", r.ID)
		}
		ids[r.ID] = r.Type
	}
	// every parent reference resolves and keeps the parent's type
	for _, r := range rows {
		if r.ParentID == "" {
			continue
		}
		parentType, ok := ids[r.ParentID]
		if !ok {
			t.Fatalf("account %s references unknown parent %s", r.ID, r.ParentID)
		}
		if r.Type != parentType {
			t.Fatalf("account %s type %s differs from parent type %s", r.ID, r.Type, parentType)
		}
	}

	// the well-known entity parents must exist with the expected types
	var sawCustomers, sawSuppliers bool
	for _, r := range rows {
		switch r.Name {
		case CustomersParentName:
			sawCustomers = true
			if r.Type != AccountTypeAssets {
				t.Fatalf("%s parent type = %s, want assets", CustomersParentName, r.Type)
			}
		case SuppliersParentName:
			sawSuppliers = true
			if r.Type != AccountTypeLiabilities {
				t.Fatalf("%s parent type = %s, want liabilities", SuppliersParentName, r.Type)
			}
		}
	}
	if !sawCustomers || !sawSuppliers {
		t.Fatal("default chart missing well-known entity parents")
	}
}

func TestAccountLinked(t *testing.T) {
	plain := Account{ID: "a"}
	if plain.Linked() {
		t.Fatal("plain account reported as linked")
	}
	linked := Account{ID: "b", IsSystemGenerated: true, LinkedEntityID: "c1", LinkedEntityType: EntityTypeCustomer}
	if !linked.Linked() {
		t.Fatal("system-generated account not reported as linked")
	}
}
