package tree

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal conditions a build can hit. Callers match
// them with errors.Is; the concrete error is always a *WalkError carrying
// the node and operation involved.
var (
	// ErrConflictingParent reports a record claimed as a child by two
	// different parents through explicit containment keys.
	ErrConflictingParent = errors.New("conflicting parent assignment")

	// ErrOrphanedNode reports a reference to an already-visited record
	// that has no parent and no pending placement.
	ErrOrphanedNode = errors.New("orphaned node")

	// ErrHeuristicsExhausted reports a deferred record that no placement
	// heuristic could attach to the tree.
	ErrHeuristicsExhausted = errors.New("placement heuristics exhausted")

	// ErrUnreachableNodes reports constructed nodes that verification
	// found detached from the root.
	ErrUnreachableNodes = errors.New("nodes unreachable from root")

	// ErrTooManyNodes reports that the walk hit the configured node
	// budget.
	ErrTooManyNodes = errors.New("node budget exceeded")
)

// errWouldCycle marks a parent assignment that would make a node its own
// ancestor. It never escapes the package: the walker demotes such edges to
// non-tree relationships and the resolver skips the candidate.
var errWouldCycle = errors.New("assignment would create a cycle")

// WalkError wraps a fatal build failure with the operation and node where
// it surfaced.
type WalkError struct {
	Op     string
	NodeID int
	Detail string
	Err    error
}

func (e *WalkError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: node %d: %v", e.Op, e.NodeID, e.Err)
	}
	return fmt.Sprintf("%s: node %d: %s: %v", e.Op, e.NodeID, e.Detail, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

func walkErr(op string, nodeID int, err error, format string, args ...any) *WalkError {
	return &WalkError{
		Op:     op,
		NodeID: nodeID,
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
