package pdfprobe

import (
	"errors"

	"github.com/tsawler/pdfprobe/tree"
)

// ErrNoDocument is returned by terminal operations on a Probe that was
// created without a document.
var ErrNoDocument = errors.New("no document provided")

// Fatal analysis failures, re-exported from the tree package so hosts
// can match them with errors.Is without importing it. The concrete
// error a terminal operation returns for these is a *tree.WalkError
// carrying the operation and record involved.
var (
	// ErrConflictingParent reports a record claimed as a child by two
	// different parents through explicit containment keys.
	ErrConflictingParent = tree.ErrConflictingParent

	// ErrOrphanedNode reports a reference to an already-visited record
	// that has no parent and no pending placement.
	ErrOrphanedNode = tree.ErrOrphanedNode

	// ErrHeuristicsExhausted reports a deferred record that no
	// placement heuristic could attach to the tree.
	ErrHeuristicsExhausted = tree.ErrHeuristicsExhausted

	// ErrUnreachableNodes reports constructed nodes that verification
	// found detached from the root.
	ErrUnreachableNodes = tree.ErrUnreachableNodes

	// ErrTooManyNodes reports that the analysis hit the configured
	// node budget.
	ErrTooManyNodes = tree.ErrTooManyNodes
)
