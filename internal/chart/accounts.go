package chart

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/chartkeep/chartkeep/internal/books"
)

// AccountInput carries the caller-supplied fields for a new account. The id
// is issued by the store: remote when reachable, local fallback otherwise.
type AccountInput struct {
	Code     string
	Name     string
	Type     books.AccountType
	ParentID string
	Balance  decimal.Decimal
}

// AccountChanges is a partial update; nil fields are left untouched.
// Reparenting is deliberately not supported through update.
type AccountChanges struct {
	Code    *string
	Name    *string
	Type    *books.AccountType
	Balance *decimal.Decimal
}

// Accounts returns the root-level accounts with nested children. An empty
// tree triggers re-hydration and, if the cache is also empty, re-seeding
// before returning (self-healing read).
func (s *Store) Accounts(ctx context.Context) []books.Account {
	s.mu.RLock()
	empty := len(s.nodes) == 0
	s.mu.RUnlock()
	if empty {
		s.mu.Lock()
		reseeded := false
		if len(s.nodes) == 0 {
			s.hydrateLocked(ctx)
			if len(s.nodes) == 0 {
				s.seedLocked(ctx)
				reseeded = true
			}
		}
		s.mu.Unlock()
		if reseeded {
			s.bus.notify()
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.treeLocked()
}

// AccountsFlat returns the whole tree flattened in pre-order.
func (s *Store) AccountsFlat() []books.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flattenLocked()
}

// FindAccountByName returns the first account with the given name in
// pre-order, if any.
func (s *Store) FindAccountByName(name string) (books.Account, bool) {
	return s.FindAccount(func(a books.Account) bool { return a.Name == name })
}

// FindAccount returns the first account matching pred in pre-order.
func (s *Store) FindAccount(pred func(books.Account) bool) (books.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(pred)
}

// AddAccount inserts a new account under ParentID, or as a root when
// ParentID is empty. A ParentID that resolves to no node yields
// OutcomeParentNotFound and inserts nothing. The in-memory insert, cache
// write and subscriber notification happen regardless of remote outcome.
func (s *Store) AddAccount(ctx context.Context, in AccountInput) (books.Account, Outcome) {
	row := books.Account{
		Code:     in.Code,
		Name:     in.Name,
		Type:     in.Type,
		ParentID: in.ParentID,
		Balance:  in.Balance,
	}
	return s.addAccount(ctx, row)
}

// addAccount is the shared insert path for explicit creates and
// system-generated entity accounts. row carries everything but the id.
func (s *Store) addAccount(ctx context.Context, row books.Account) (books.Account, Outcome) {
	if row.ParentID != "" {
		s.mu.RLock()
		_, ok := s.nodes[row.ParentID]
		s.mu.RUnlock()
		if !ok {
			return books.Account{}, OutcomeParentNotFound
		}
	}

	id, remoteIssued := s.issueAccountID(ctx, row)
	row.ID = id

	s.mu.Lock()
	if row.ParentID != "" {
		parent, ok := s.nodes[row.ParentID]
		if !ok {
			// Parent deleted between the check and the insert. Undo the
			// remote create if one happened and report the miss.
			s.mu.Unlock()
			if remoteIssued {
				s.enqueueAccountDelete(id)
			}
			return books.Account{}, OutcomeParentNotFound
		}
		parent.childIDs = append(parent.childIDs, id)
	} else {
		s.rootIDs = append(s.rootIDs, id)
	}
	s.nodes[id] = &node{acc: row}
	s.persistAccountsLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()
	return row, OutcomeApplied
}

// UpdateAccount merges the provided fields into the matching node. The cache
// write and notification happen synchronously; the remote update drains
// through the write queue.
func (s *Store) UpdateAccount(ctx context.Context, id string, changes AccountChanges) Outcome {
	s.mu.Lock()
	n, ok := s.nodes[id]
	if !ok {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	if changes.Code != nil {
		n.acc.Code = *changes.Code
	}
	if changes.Name != nil {
		n.acc.Name = *changes.Name
	}
	if changes.Type != nil {
		n.acc.Type = *changes.Type
	}
	if changes.Balance != nil {
		n.acc.Balance = *changes.Balance
	}
	updated := n.acc
	s.persistAccountsLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()
	s.enqueueAccountUpdate(updated)
	return OutcomeApplied
}

// DeleteAccount removes the node and its entire subtree. Descendants are
// discarded with the node; there is no re-parenting.
func (s *Store) DeleteAccount(ctx context.Context, id string) Outcome {
	s.mu.Lock()
	if _, ok := s.nodes[id]; !ok {
		s.mu.Unlock()
		return OutcomeNotFound
	}
	removed := s.subtreeIDsLocked(id)
	s.detachLocked(id)
	for _, rid := range removed {
		delete(s.nodes, rid)
	}
	s.persistAccountsLocked(ctx)
	s.mu.Unlock()
	s.bus.notify()
	for _, rid := range removed {
		s.enqueueAccountDelete(rid)
	}
	return OutcomeApplied
}

// issueAccountID asks the remote store for an id, falling back to a local
// one when the remote is unset or unreachable.
func (s *Store) issueAccountID(ctx context.Context, row books.Account) (string, bool) {
	if s.remote == nil {
		return localAccountID(), false
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	id, err := s.remote.CreateAccount(ctx, row)
	if err != nil {
		s.log.Warn("remote account create failed, using local id", "name", row.Name, "err", err)
		return localAccountID(), false
	}
	return id, true
}

func (s *Store) enqueueAccountUpdate(a books.Account) {
	if s.queue == nil {
		return
	}
	s.queue.enqueue(remoteOp{
		op:  "update-account",
		key: a.ID,
		call: func(ctx context.Context) error {
			return s.remote.UpdateAccount(ctx, a)
		},
	})
}

func (s *Store) enqueueAccountDelete(id string) {
	if s.queue == nil {
		return
	}
	s.queue.enqueue(remoteOp{
		op:  "delete-account",
		key: id,
		call: func(ctx context.Context) error {
			return s.remote.DeleteAccount(ctx, id)
		},
	})
}

func localAccountID() string {
	return "local-" + uuid.New().String()
}

// linkedAccountCode derives the code of a system-generated account from its
// well-known parent's code and a suffix of the entity id.
func linkedAccountCode(parentCode, entityID string) string {
	suffix := strings.ReplaceAll(entityID, "-", "")
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return parentCode + "-" + suffix
}
