// Package cache defines the snapshot cache used for offline-first reads.
// Values are whole-collection JSON snapshots written as full overwrites on
// every mutation; there is no incremental diff format.
package cache

import "context"

// Keys under which the store persists its snapshots.
const (
	KeyAccounts  = "chartkeep:accounts"
	KeyCustomers = "chartkeep:customers"
	KeySuppliers = "chartkeep:suppliers"
)

// Cache is a string-keyed snapshot store. Get reports ok=false for a missing
// key; callers treat missing or malformed values as empty collections.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
