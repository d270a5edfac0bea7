package tree

// repairStrays attaches records the walk never reached but whose role can
// be inferred by convention: linearization dictionaries, records naming
// their owner through /P, shared color spaces, object stream containers
// and orphaned page containers. Everything it cannot infer is left for the
// verifier to report.
func (w *walker) repairStrays() error {
	size, ok := w.src.DeclaredSize()
	if !ok {
		return nil
	}
	var missing []int
	for id := 1; id < size; id++ {
		if n := w.nodes[id]; n != nil && w.inTree(n) {
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) > missingCountWarnThreshold {
		w.log.Warnw("many declared records are not in the tree", "count", len(missing))
	}
	for _, id := range missing {
		if err := w.adoptStray(id); err != nil {
			return err
		}
	}
	return w.adoptOrphanedPageContainers()
}

func (w *walker) adoptStray(id int) error {
	if n := w.nodes[id]; n != nil && n.parent != nil {
		return nil
	}
	obj, err := w.src.Object(id)
	if err != nil {
		return nil
	}
	dict := dictOf(obj)
	if dict == nil {
		return nil
	}

	// Linearization parameter dictionaries are located by byte offset,
	// never by reference, so finding one unreferenced is expected.
	if !dict.Has("Type") && dict.Has("Linearized") {
		n, err := w.buildOrFindNode(id, "/Linearized")
		if err != nil {
			return err
		}
		if err := w.root.addChild(n); err == nil {
			w.log.Infow("adopted linearization parameters under the root", "node", n)
		}
		return nil
	}

	if ref, ok := dict.GetIndirectRef("P"); ok {
		if owner := w.nodes[ref.Number]; owner != nil && w.inTree(owner) {
			return w.adoptUnder(owner, id, refP,
				"attached stray record to the node its /P entry names")
		}
	}

	if ref, ok := dict.GetIndirectRef("ColorSpace"); ok {
		if owner := w.nodes[ref.Number]; owner != nil && w.inTree(owner) {
			return w.adoptUnder(owner, id, refColorSpace,
				"attached stray record to the node its /ColorSpace entry names")
		}
	}

	if t, ok := dict.GetName("Type"); ok && t.String() == kindObjStm {
		return w.adoptUnder(w.root, id, "/ObjStm",
			"attached object stream container to the root")
	}
	return nil
}

func (w *walker) adoptUnder(owner *Node, id int, address, reason string) error {
	n, err := w.buildOrFindNode(id, address)
	if err != nil {
		return err
	}
	if err := owner.addChild(n); err != nil {
		w.log.Warnw("could not attach stray record", "node", n, "owner", owner, "err", err)
		return nil
	}
	w.warn(WarnAdoptedStray, id, reason)
	w.log.Warnw(reason, "node", n, "owner", owner)
	return nil
}

// adoptOrphanedPageContainers hangs parentless /Pages nodes off the
// catalog. Some writers emit page containers nothing points at.
func (w *walker) adoptOrphanedPageContainers() error {
	catalog := w.findFirstByKind(kindCatalog)
	if catalog == nil {
		return nil
	}
	for _, id := range w.sortedNodeIDs() {
		n := w.nodes[id]
		if n == w.root || n.parent != nil || n.kind != kindPages {
			continue
		}
		if err := n.setParent(catalog); err != nil {
			w.log.Warnw("could not attach orphaned page container", "node", n, "err", err)
			continue
		}
		w.warn(WarnAdoptedStray, n.id, "orphaned page container attached to the catalog")
		w.log.Warnw("orphaned page container attached to the catalog", "node", n)
	}
	return nil
}

// findFirstByKind returns the first node of the given kind in level order.
func (w *walker) findFirstByKind(kind string) *Node {
	for _, n := range levelOrder(w.root) {
		if n.kind == kind {
			return n
		}
	}
	return nil
}
