package chart

import "github.com/chartkeep/chartkeep/internal/books"

// Arena traversal helpers. All assume s.mu is held (read or write as noted by
// the caller); none of them mutate.

// flattenLocked returns every account in pre-order: each root followed by its
// subtree, children in insertion order. Children fields stay nil; hierarchy
// is carried by ParentID.
func (s *Store) flattenLocked() []books.Account {
	out := make([]books.Account, 0, len(s.nodes))
	for _, id := range s.rootIDs {
		out = s.appendSubtreeLocked(out, id)
	}
	return out
}

func (s *Store) appendSubtreeLocked(out []books.Account, id string) []books.Account {
	n, ok := s.nodes[id]
	if !ok {
		return out
	}
	out = append(out, n.acc)
	for _, childID := range n.childIDs {
		out = s.appendSubtreeLocked(out, childID)
	}
	return out
}

// treeLocked materializes the root accounts with nested Children copies.
func (s *Store) treeLocked() []books.Account {
	out := make([]books.Account, 0, len(s.rootIDs))
	for _, id := range s.rootIDs {
		if acc, ok := s.nestedLocked(id); ok {
			out = append(out, acc)
		}
	}
	return out
}

func (s *Store) nestedLocked(id string) (books.Account, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return books.Account{}, false
	}
	acc := n.acc
	if len(n.childIDs) > 0 {
		acc.Children = make([]books.Account, 0, len(n.childIDs))
		for _, childID := range n.childIDs {
			if child, ok := s.nestedLocked(childID); ok {
				acc.Children = append(acc.Children, child)
			}
		}
	}
	return acc, true
}

// subtreeIDsLocked collects id and all its descendants, deepest first, so
// remote deletes can run leaf-to-root.
func (s *Store) subtreeIDsLocked(id string) []string {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	var out []string
	for _, childID := range n.childIDs {
		out = append(out, s.subtreeIDsLocked(childID)...)
	}
	return append(out, id)
}

// detachLocked removes id from its parent's child list or from the roots.
func (s *Store) detachLocked(id string) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	if n.acc.ParentID != "" {
		if parent, ok := s.nodes[n.acc.ParentID]; ok {
			parent.childIDs = removeID(parent.childIDs, id)
			return
		}
	}
	s.rootIDs = removeID(s.rootIDs, id)
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// findLocked returns the first account matching pred in pre-order.
func (s *Store) findLocked(pred func(books.Account) bool) (books.Account, bool) {
	for _, id := range s.rootIDs {
		if acc, ok := s.findInSubtreeLocked(id, pred); ok {
			return acc, true
		}
	}
	return books.Account{}, false
}

func (s *Store) findInSubtreeLocked(id string, pred func(books.Account) bool) (books.Account, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return books.Account{}, false
	}
	if pred(n.acc) {
		return n.acc, true
	}
	for _, childID := range n.childIDs {
		if acc, ok := s.findInSubtreeLocked(childID, pred); ok {
			return acc, true
		}
	}
	return books.Account{}, false
}
