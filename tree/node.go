package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/pdfprobe/core"
)

// Node is one record in the outline. Tree edges (parent, children) model
// ownership; non-tree relationships record every other inbound reference
// and survive as symlinks after the build.
type Node struct {
	id           int
	obj          core.Object
	kind         string
	subkind      string
	label        string
	firstAddress string

	parent   *Node
	children []*Node
	nonTree  []*Relationship

	streamData   []byte
	streamLength int

	degraded  bool
	processed bool
}

// newNode derives the node's label and kind from its object and the
// address it was first discovered at. Dictionaries and streams take their
// kind from /Type when present, falling back to the address; anything else
// is labeled by its address alone. Bare array indexes get the unlabeled
// element marker so every node has a printable name.
func newNode(obj core.Object, address string, id int) *Node {
	n := &Node{id: id, obj: obj, firstAddress: address}

	dict := dictOf(obj)
	named := address
	if named == "" || strings.HasPrefix(named, "[") {
		named = UnlabeledElement + named
	}

	if dict == nil {
		n.label = named
		n.kind = rootAddress(named)
		return n
	}

	typeName := ""
	if t, ok := dict.GetName("Type"); ok {
		typeName = t.String()
	}
	if s, ok := dict.GetName("Subtype"); ok {
		n.subkind = s.String()
	} else if s, ok := dict.GetName("S"); ok {
		n.subkind = s.String()
	}

	base := typeName
	if base == "" {
		base = named
	}
	label := base
	if typeName != "" && n.subkind != "" {
		label = typeName + ":" + strings.TrimPrefix(n.subkind, "/")
	}
	n.kind = rootAddress(base)
	n.label = rootAddress(label)
	return n
}

// newDegradedNode stands in for a record that could not be fetched.
func newDegradedNode(id int, address string) *Node {
	n := newNode(nil, address, id)
	n.degraded = true
	return n
}

// dictOf returns the dictionary behind obj: the object itself for a
// dictionary, the header for a stream, nil otherwise.
func dictOf(obj core.Object) core.Dict {
	switch o := obj.(type) {
	case core.Dict:
		return o
	case *core.Stream:
		return o.Dict
	}
	return nil
}

func (n *Node) ID() int { return n.id }

func (n *Node) Object() core.Object { return n.obj }

func (n *Node) Kind() string { return n.kind }

func (n *Node) Subkind() string { return n.subkind }

func (n *Node) Label() string { return n.label }

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Degraded() bool { return n.degraded }

func (n *Node) StreamData() []byte { return n.streamData }

func (n *Node) StreamLength() int { return n.streamLength }

// Children returns the node's tree children in discovery order. The slice
// is the node's own; callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// NonTreeRelationships returns the inbound references that did not become
// tree edges, in discovery order.
func (n *Node) NonTreeRelationships() []*Relationship { return n.nonTree }

func (n *Node) String() string {
	return fmt.Sprintf("<%d:%s>", n.id, n.label)
}

// setParent attaches n under p. A second, different parent is a fatal
// conflict; re-attaching to the same parent is a no-op. An assignment that
// would make n its own ancestor fails with errWouldCycle so the caller can
// demote the edge instead.
func (n *Node) setParent(p *Node) error {
	if p == n || n.IsAncestorOf(p) {
		return fmt.Errorf("%s under %s: %w", n, p, errWouldCycle)
	}
	if n.parent != nil {
		if n.parent == p {
			return nil
		}
		return fmt.Errorf("%s already parented by %s, refusing %s: %w",
			n, n.parent, p, ErrConflictingParent)
	}
	n.parent = p
	p.children = append(p.children, n)
	n.removeNonTreeRelationshipsFrom(p)
	return nil
}

// addChild attaches c under n, ignoring the call if c is already a child.
func (n *Node) addChild(c *Node) error {
	for _, existing := range n.children {
		if existing.id == c.id {
			return nil
		}
	}
	return c.setParent(n)
}

// addNonTreeRelationship records an inbound reference that is not a tree
// edge. Duplicate relationships (same source, key and address) collapse.
func (n *Node) addNonTreeRelationship(r *Relationship) {
	for _, existing := range n.nonTree {
		if existing.equal(r) {
			return
		}
	}
	n.nonTree = append(n.nonTree, r)
}

// removeNonTreeRelationshipsFrom drops relationships originating at p,
// returning the removed ones. Called when p becomes n's parent: the tree
// edge supersedes them.
func (n *Node) removeNonTreeRelationshipsFrom(p *Node) []*Relationship {
	var kept []*Relationship
	var removed []*Relationship
	for _, r := range n.nonTree {
		if r.From == p {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}
	n.nonTree = kept
	return removed
}

func (n *Node) hasChild(c *Node) bool {
	for _, existing := range n.children {
		if existing == c {
			return true
		}
	}
	return false
}

// IsAncestorOf reports whether other sits somewhere below n.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// ancestors returns the chain from n's parent up to the root.
func (n *Node) ancestors() []*Node {
	var chain []*Node
	for p := n.parent; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	return chain
}

// DescendantCount returns the number of nodes below n.
func (n *Node) DescendantCount() int {
	total := len(n.children)
	for _, c := range n.children {
		total += c.DescendantCount()
	}
	return total
}

// AddressInParent returns the address this node is known by inside its
// parent's object. Parentless nodes fall back to their first discovered
// address.
func (n *Node) AddressInParent() string {
	if n.parent == nil {
		return n.firstAddress
	}
	if addr := n.addressIn(n.parent); addr != "" {
		return addr
	}
	return n.firstAddress
}

// addressIn scans other's object for references to n and returns the
// address of the first one found. A cross-reference stream adopted by the
// trailer is referenced through /XRefStm in the trailer dictionary rather
// than by a direct reference, so that case is answered specially.
func (n *Node) addressIn(other *Node) string {
	var first string
	for _, r := range discoverReferences(other) {
		if r.TargetID != n.id {
			continue
		}
		if first == "" {
			first = r.Address
		}
	}
	if first != "" {
		return first
	}
	if n.parent == other && other.label == TrailerLabel && n.kind == kindXRef {
		if d := dictOf(other.obj); d != nil && d.Has("XRefStm") {
			return "/XRefStm"
		}
	}
	return ""
}

// Address returns the node's full path from the root, truncated from the
// left to a presentable length. The root itself answers "/".
func (n *Node) Address() string {
	addr := n.fullAddress()
	if len(addr) > defaultMaxAddressLength {
		addr = "..." + addr[len(addr)-defaultMaxAddressLength+3:]
	}
	return addr
}

func (n *Node) fullAddress() string {
	if n.label == TrailerLabel {
		return "/"
	}
	if n.parent == nil {
		return n.firstAddress
	}
	if n.parent.label == TrailerLabel {
		return n.AddressInParent()
	}
	return n.parent.fullAddress() + n.AddressInParent()
}

// referrers returns the distinct sources of n's non-tree relationships in
// discovery order.
func (n *Node) referrers() []*Node {
	var out []*Node
	seen := make(map[int]bool, len(n.nonTree))
	for _, r := range n.nonTree {
		if !seen[r.From.id] {
			seen[r.From.id] = true
			out = append(out, r.From)
		}
	}
	return out
}

// uniqueAddresses returns the sorted set of addresses n is referenced by,
// including its address in its parent when it has one.
func (n *Node) uniqueAddresses() []string {
	set := make(map[string]bool, len(n.nonTree)+1)
	for _, r := range n.nonTree {
		set[r.Address] = true
	}
	if n.parent != nil {
		set[n.AddressInParent()] = true
	}
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// uniqueReferrerLabels returns the sorted set of labels of the nodes that
// reference n.
func (n *Node) uniqueReferrerLabels() []string {
	set := make(map[string]bool, len(n.nonTree))
	for _, r := range n.nonTree {
		set[r.From.label] = true
	}
	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
