package chart

// Outcome reports what a mutation did. The store never returns an error for a
// missing reference; callers that only care about the old boolean contract
// can use Applied.
type Outcome string

const (
	// OutcomeApplied means the mutation changed the in-memory state and was
	// persisted to the local cache.
	OutcomeApplied Outcome = "applied"
	// OutcomeNotFound means no node or entity matched the given id and
	// nothing changed.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeParentNotFound means the requested parent id resolves to no node
	// in the tree and nothing was inserted.
	OutcomeParentNotFound Outcome = "parent_not_found"
)

// Applied reports whether the mutation took effect.
func (o Outcome) Applied() bool { return o == OutcomeApplied }
