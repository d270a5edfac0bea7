package tree

import (
	"fmt"
	"sort"
)

// resolveIndeterminate places every node whose ownership was deferred
// during the walk. Nodes are taken in ascending record order so repeated
// builds of the same document place them identically. A node that picked
// up a parent since it was marked needs nothing more.
func (w *walker) resolveIndeterminate() error {
	ids := make([]int, 0, len(w.indeterminate))
	for id := range w.indeterminate {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		n := w.nodes[id]
		if n == nil || n == w.root {
			continue
		}
		if n.parent != nil {
			w.log.Infow("deferred node was placed during the walk", "node", n)
			continue
		}
		if err := w.placeNode(n); err != nil {
			w.log.Errorw("could not place deferred node",
				"node", n, "err", err, "tree", dumpString(w.root, nil))
			return err
		}
	}
	return nil
}

// placeNode chooses a parent for one deferred node. The heuristics run in
// order from strongest evidence to weakest; the first that produces a
// candidate wins. Referrers the node already contains are ruled out up
// front so no placement can bend the tree into a cycle.
func (w *walker) placeNode(n *Node) error {
	rels := eligibleRelationships(n)
	if len(rels) == 0 {
		return walkErr("resolve", n.id, ErrHeuristicsExhausted, "no usable referrers")
	}
	referrers := referrersOf(rels)

	if ancestor := commonAncestorAmong(referrers); ancestor != nil {
		w.log.Infow("placing deferred node under the common ancestor of its referrers",
			"node", n, "ancestor", ancestor)
		return n.setParent(ancestor)
	}

	childKeyed := func(r *Relationship) bool { return r.Key == refK || r.Key == refKids }
	if p := soleSurvivor(rels, childKeyed); p != nil {
		w.log.Infow("placing deferred node under its only child-list referrer",
			"node", n, "parent", p)
		return n.setParent(p)
	}
	structural := func(r *Relationship) bool { return !nonTreeKeys[r.From.kind] }
	if p := soleSurvivor(rels, structural); p != nil {
		w.log.Infow("placing deferred node under its only structural referrer",
			"node", n, "parent", p)
		return n.setParent(p)
	}

	if p := resourcesOwner(n, rels); p != nil {
		w.log.Infow("placing resource container under its outermost resource referrer",
			"node", n, "parent", p)
		return n.setParent(p)
	}

	return w.placeByDescendants(n, rels, referrers)
}

// placeByDescendants is the weak-evidence fallback: the referrer with the
// most descendants adopts the node. A few patterns adjust the choice or
// the severity of the report before the assignment happens.
func (w *walker) placeByDescendants(n *Node, rels []*Relationship, referrers []*Node) error {
	parent := mostDescendants(referrers)
	pagelike := relsFromKinds(rels, kindPage, kindPages)
	labels := n.uniqueReferrerLabels()

	switch {
	case hasOnlySimilarRelationships(n):
		w.log.Infow("referrers are all alike, placing under the largest",
			"node", n, "parent", parent)

	case len(pagelike) == 1:
		parent = pagelike[0].From
		w.log.Infow("placing deferred node under its only page-tree referrer",
			"node", n, "parent", parent)

	case n.kind == refColorSpace:
		w.log.Infow("shared color space, placing under the largest referrer",
			"node", n, "parent", parent)

	case len(labels) == 2 && labels[0] == kindPage && labels[1] == kindPages:
		w.warn(WarnLooseContainment, n.id,
			"referenced only by pages and page containers, attaching to a page container")
		w.log.Warnw("page-referenced node violates containment conventions",
			"node", n, "referrers", referrers)
		pages := nodesOfKind(referrers, kindPages)
		if len(pages) == 0 {
			return walkErr("resolve", n.id, ErrHeuristicsExhausted,
				"only leaf pages refer to this node")
		}
		parent = mostDescendants(pages)

	default:
		w.warn(WarnWeakEvidence, n.id, fmt.Sprintf(
			"placed under %s on descendant count alone", parent))
		w.log.Warnw("placing deferred node on descendant count alone",
			"node", n, "parent", parent, "relationships", rels)
	}
	return n.setParent(parent)
}

// eligibleRelationships drops referrers that live below n; adopting one of
// those would create a cycle.
func eligibleRelationships(n *Node) []*Relationship {
	var out []*Relationship
	for _, r := range n.nonTree {
		if r.From == n || n.IsAncestorOf(r.From) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// referrersOf returns the distinct sources of rels in first-seen order.
func referrersOf(rels []*Relationship) []*Node {
	var out []*Node
	seen := make(map[int]bool, len(rels))
	for _, r := range rels {
		if !seen[r.From.id] {
			seen[r.From.id] = true
			out = append(out, r.From)
		}
	}
	return out
}

// commonAncestorAmong returns the node that is an ancestor of every other
// node in the list, if one exists. A single node wins by default.
func commonAncestorAmong(nodes []*Node) *Node {
	for _, candidate := range nodes {
		wins := true
		for _, other := range nodes {
			if other == candidate {
				continue
			}
			if !candidate.IsAncestorOf(other) {
				wins = false
				break
			}
		}
		if wins {
			return candidate
		}
	}
	return nil
}

// soleSurvivor returns the source of the only relationship keep accepts,
// or nil when the filter leaves zero or several.
func soleSurvivor(rels []*Relationship, keep func(*Relationship) bool) *Node {
	var only *Relationship
	for _, r := range rels {
		if !keep(r) {
			continue
		}
		if only != nil {
			return nil
		}
		only = r
	}
	if only == nil {
		return nil
	}
	return only.From
}

// resourcesOwner applies only to nodes labeled as resource containers: if
// one resource-keyed referrer sits above all the others, it owns the
// container and the rest merely inherit it.
func resourcesOwner(n *Node, rels []*Relationship) *Node {
	if rootAddress(n.label) != refResources {
		return nil
	}
	var candidates []*Relationship
	for _, r := range rels {
		if r.Key == refResources {
			candidates = append(candidates, r)
		}
	}
	for _, c := range candidates {
		outermost := true
		for _, r := range candidates {
			if r == c || r.From == c.From {
				continue
			}
			if !c.From.IsAncestorOf(r.From) {
				outermost = false
				break
			}
		}
		if outermost {
			return c.From
		}
	}
	return nil
}

// hasOnlySimilarRelationships reports whether the node's inbound
// references all look alike, either by address or by referrer label, once
// numbering differences are ignored.
func hasOnlySimilarRelationships(n *Node) bool {
	for _, strs := range [][]string{n.uniqueAddresses(), n.uniqueReferrerLabels()} {
		if allSameIgnoringDigits(strs) || haveCommonSubstring(strs) {
			return true
		}
	}
	return false
}

// relsFromKinds returns the relationships whose source kind is one of the
// given kinds.
func relsFromKinds(rels []*Relationship, kinds ...string) []*Relationship {
	var out []*Relationship
	for _, r := range rels {
		for _, k := range kinds {
			if r.From.kind == k {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// nodesOfKind filters nodes by kind.
func nodesOfKind(nodes []*Node, kind string) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// mostDescendants returns the node with the most descendants, breaking
// ties toward the lowest record number.
func mostDescendants(nodes []*Node) *Node {
	var best *Node
	bestCount := -1
	for _, n := range nodes {
		c := n.DescendantCount()
		if c > bestCount || (c == bestCount && best != nil && n.id < best.id) {
			best, bestCount = n, c
		}
	}
	return best
}
