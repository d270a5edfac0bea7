package tree

import "fmt"

// SymlinkEdge is a reference that survived tree building without becoming
// a tree edge: the target lives elsewhere in the tree and this edge points
// at it, labeled by the address the reference was found under.
type SymlinkEdge struct {
	From    *Node
	To      *Node
	Key     string
	Address string
}

func (e SymlinkEdge) String() string {
	return fmt.Sprintf("%s ~> %s @%s", e.From, e.To, e.Address)
}

// materializeSymlinks turns the surviving non-tree relationships into
// symlink edges, visiting nodes in level order so the edge list is stable
// across builds. A relationship whose source is the node's own parent or
// one of its children duplicates a tree edge and is dropped.
func (w *walker) materializeSymlinks() {
	for _, n := range levelOrder(w.root) {
		var kept []*Relationship
		for _, r := range n.nonTree {
			if r.From == n.parent || n.hasChild(r.From) {
				continue
			}
			kept = append(kept, r)
			w.symlinks = append(w.symlinks, SymlinkEdge{
				From:    r.From,
				To:      n,
				Key:     r.Key,
				Address: r.Address,
			})
		}
		n.nonTree = kept
	}
}
