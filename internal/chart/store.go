// Package chart implements the chart-of-accounts store: a single in-process
// owner of the account hierarchy and the customer/supplier registries.
//
// The store is offline-first. Every mutation applies to the in-memory arena
// and the local snapshot cache synchronously, then propagates to the remote
// store best-effort: creates try the remote once to obtain a remote-issued id
// and fall back to a local id, updates and deletes drain through a serialized
// write queue. Remote failure never surfaces to callers.
package chart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chartkeep/chartkeep/internal/books"
	"github.com/chartkeep/chartkeep/internal/cache"
	"github.com/chartkeep/chartkeep/internal/remote"
)

var reconcileTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "chartkeep",
		Name:      "reconcile_total",
		Help:      "Remote reconciliation attempts by result",
	},
	[]string{"result"},
)

// State tracks the store lifecycle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateSeeding       State = "seeding"
	StateReady         State = "ready"
)

// node is an arena entry. The account is stored flat (Children nil); the
// hierarchy lives in the childIDs index so cascade deletes are explicit walks
// rather than recursive pointer chasing.
type node struct {
	acc      books.Account
	childIDs []string
}

// Config wires the store's collaborators. Remote is optional; without it the
// store runs local-only.
type Config struct {
	Cache         cache.Cache
	Remote        remote.Store
	Logger        *slog.Logger
	RemoteTimeout time.Duration
}

// Store owns the canonical in-memory chart plus the entity registries. One
// instance is constructed per process at startup and torn down only on exit.
// All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	cache  cache.Cache
	remote remote.Store
	log    *slog.Logger

	// timeout bounds the synchronous remote create used for id issuance.
	timeout time.Duration

	state     State
	nodes     map[string]*node
	rootIDs   []string
	customers []books.Customer
	suppliers []books.Supplier

	bus   *bus
	queue *writeQueue
}

// New constructs an uninitialized store. Call Init before use.
func New(cfg Config) *Store {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	timeout := cfg.RemoteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s := &Store{
		cache:   cfg.Cache,
		remote:  cfg.Remote,
		log:     log,
		timeout: timeout,
		state:   StateUninitialized,
		nodes:   make(map[string]*node),
		bus:     newBus(log),
	}
	if cfg.Remote != nil {
		s.queue = newWriteQueue(log, timeout)
	}
	return s
}

// Init hydrates the store from the local cache, seeds the default chart when
// the cache is empty, marks the store ready and notifies subscribers. Remote
// reconciliation then runs in the background without gating readiness; its
// failure is logged and the store keeps serving from the cache.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	s.hydrateLocked(ctx)
	if len(s.nodes) == 0 {
		s.state = StateSeeding
		s.seedLocked(ctx)
	}
	s.state = StateReady
	s.mu.Unlock()
	s.bus.notify()

	if s.remote != nil {
		go func() {
			if err := s.Reconcile(context.Background()); err != nil {
				s.log.Warn("remote reconciliation failed, serving local cache", "err", err)
			}
		}()
	}
}

// Close drains the remote write queue. The store has no other teardown; it
// lives for the whole process.
func (s *Store) Close() {
	if s.queue != nil {
		s.queue.close()
	}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// AddListener registers a change callback and returns a token for removal.
func (s *Store) AddListener(fn Listener) int { return s.bus.add(fn) }

// RemoveListener deregisters the callback registered under token.
func (s *Store) RemoveListener(token int) { s.bus.remove(token) }

// Reconcile fetches the remote data set once and folds it into the store:
// remote rows are authoritative for accounts, customer and supplier rows are
// merged additively (local entries absent remotely are preserved, first
// occurrence by id wins). Best effort with no retry; errors are returned for
// logging only.
func (s *Store) Reconcile(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}
	accounts, err := s.remote.FetchAccounts(ctx)
	if err != nil {
		reconcileTotal.WithLabelValues("error").Inc()
		return err
	}
	customers, err := s.remote.FetchCustomers(ctx)
	if err != nil {
		reconcileTotal.WithLabelValues("error").Inc()
		return err
	}
	suppliers, err := s.remote.FetchSuppliers(ctx)
	if err != nil {
		reconcileTotal.WithLabelValues("error").Inc()
		return err
	}

	s.mu.Lock()
	// An empty remote account set means the backend has not been provisioned
	// yet; do not clobber the seeded local chart with nothing.
	if len(accounts) > 0 {
		s.buildIndexLocked(accounts)
		s.persistAccountsLocked(ctx)
	}
	s.customers = mergeCustomers(s.customers, customers)
	s.suppliers = mergeSuppliers(s.suppliers, suppliers)
	s.persistCustomersLocked(ctx)
	s.persistSuppliersLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()
	reconcileTotal.WithLabelValues("ok").Inc()
	return nil
}

// hydrateLocked loads all three snapshots from the cache. Missing keys and
// parse failures read as empty collections.
func (s *Store) hydrateLocked(ctx context.Context) {
	var accounts []books.Account
	s.readSnapshotLocked(ctx, cache.KeyAccounts, &accounts)
	s.buildIndexLocked(accounts)

	s.customers = nil
	s.readSnapshotLocked(ctx, cache.KeyCustomers, &s.customers)
	s.suppliers = nil
	s.readSnapshotLocked(ctx, cache.KeySuppliers, &s.suppliers)
}

func (s *Store) readSnapshotLocked(ctx context.Context, key string, dst any) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed, treating as empty", "key", key, "err", err)
		return
	}
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn("cache snapshot malformed, treating as empty", "key", key, "err", err)
	}
}

// seedLocked installs the fixed default chart and persists it.
func (s *Store) seedLocked(ctx context.Context) {
	s.buildIndexLocked(books.DefaultChart())
	s.persistAccountsLocked(ctx)
	s.log.Info("seeded default chart of accounts", "accounts", len(s.nodes))
}

// buildIndexLocked rebuilds the arena from flat rows: one pass to create the
// nodes, one pass to link children. A row whose declared parent is missing
// from the set becomes a root rather than an error.
func (s *Store) buildIndexLocked(rows []books.Account) {
	s.nodes = make(map[string]*node, len(rows))
	s.rootIDs = s.rootIDs[:0]
	for _, row := range rows {
		row.Children = nil
		s.nodes[row.ID] = &node{acc: row}
	}
	for _, row := range rows {
		if row.ParentID != "" {
			if parent, ok := s.nodes[row.ParentID]; ok {
				parent.childIDs = append(parent.childIDs, row.ID)
				continue
			}
			s.log.Warn("account parent missing, promoting to root", "id", row.ID, "parent_id", row.ParentID)
		}
		s.rootIDs = append(s.rootIDs, row.ID)
	}
}

func (s *Store) persistAccountsLocked(ctx context.Context) {
	s.writeSnapshot(ctx, cache.KeyAccounts, s.flattenLocked())
}

func (s *Store) persistCustomersLocked(ctx context.Context) {
	list := s.customers
	if list == nil {
		list = []books.Customer{}
	}
	s.writeSnapshot(ctx, cache.KeyCustomers, list)
}

func (s *Store) persistSuppliersLocked(ctx context.Context) {
	list := s.suppliers
	if list == nil {
		list = []books.Supplier{}
	}
	s.writeSnapshot(ctx, cache.KeySuppliers, list)
}

func (s *Store) writeSnapshot(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Error("snapshot marshal failed", "key", key, "err", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(b)); err != nil {
		s.log.Warn("cache write failed, in-memory state still current", "key", key, "err", err)
	}
}

// mergeCustomers appends remote entries whose id is not already present.
func mergeCustomers(local, remote []books.Customer) []books.Customer {
	seen := make(map[string]struct{}, len(local))
	out := make([]books.Customer, 0, len(local)+len(remote))
	for _, c := range local {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	for _, c := range remote {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func mergeSuppliers(local, remote []books.Supplier) []books.Supplier {
	seen := make(map[string]struct{}, len(local))
	out := make([]books.Supplier, 0, len(local)+len(remote))
	for _, sp := range local {
		if _, ok := seen[sp.ID]; ok {
			continue
		}
		seen[sp.ID] = struct{}{}
		out = append(out, sp)
	}
	for _, sp := range remote {
		if _, ok := seen[sp.ID]; ok {
			continue
		}
		seen[sp.ID] = struct{}{}
		out = append(out, sp)
	}
	return out
}
