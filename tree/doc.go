// Package tree builds the canonical tree of a PDF's internal object
// graph: every record reachable from the trailer gets exactly one parent,
// and every reference that did not earn a tree edge survives as a symlink
// pointing at the node's one true location.
//
// Basic usage:
//
//	outline, warnings, err := tree.Build(doc)
//	if err != nil {
//	    // the graph contradicts itself; err is a *tree.WalkError
//	}
//	for _, w := range warnings {
//	    log.Println(w)
//	}
//	outline.Dump(os.Stdout)
//
// Building runs in five stages. The walk drains a FIFO frontier starting
// at the trailer, classifying each discovered reference as a tree edge, a
// symlink, or a deferred placement. The resolver then places every
// deferred node using a fixed battery of heuristics, strongest evidence
// first. The repair pass adopts well-known stray records the walk never
// reached. The materializer freezes the surviving non-tree references
// into [SymlinkEdge] values. Finally the verifier audits the result both
// ways: everything constructed must be reachable, and every declared
// record must be in the tree or have an explained absence.
//
// The same document always yields the same tree: dictionary keys are
// walked in sorted order, deferred nodes are resolved in ascending record
// order, and ties break toward the lowest record number.
package tree
