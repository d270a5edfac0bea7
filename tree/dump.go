package tree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented plain-text rendering of the tree to w. Each
// node prints as <id:label> with the address it holds in its parent;
// symlink edges print beneath their source, marked with "~>".
func (o *Outline) Dump(w io.Writer) error {
	return dumpTree(w, o.root, o.symlinks)
}

// DumpString renders the tree as Dump does and returns it.
func (o *Outline) DumpString() string {
	return dumpString(o.root, o.symlinks)
}

func dumpString(root *Node, symlinks []SymlinkEdge) string {
	var b strings.Builder
	_ = dumpTree(&b, root, symlinks)
	return b.String()
}

func dumpTree(w io.Writer, root *Node, symlinks []SymlinkEdge) error {
	bySource := make(map[*Node][]SymlinkEdge, len(symlinks))
	for _, e := range symlinks {
		bySource[e.From] = append(bySource[e.From], e)
	}
	return dumpNode(w, root, 0, bySource)
}

func dumpNode(w io.Writer, n *Node, depth int, bySource map[*Node][]SymlinkEdge) error {
	indent := strings.Repeat("  ", depth)
	addr := "/"
	if n.parent != nil {
		addr = n.AddressInParent()
	}
	if _, err := fmt.Fprintf(w, "%s%s @%s\n", indent, n, addr); err != nil {
		return err
	}
	for _, e := range bySource[n] {
		if _, err := fmt.Fprintf(w, "%s  ~> %s @%s\n", indent, e.To, e.Address); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := dumpNode(w, c, depth+1, bySource); err != nil {
			return err
		}
	}
	return nil
}
