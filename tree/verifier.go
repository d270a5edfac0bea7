package tree

import (
	"fmt"

	"github.com/tsawler/pdfprobe/core"
)

// verify runs the two-way audit over the finished tree. Forward: every
// node constructed during the walk must be reachable from the root; a
// violation means the build itself is broken and is fatal. Backward: every
// record number the document declares must either be in the tree or have
// an explanation for its absence; anything else is reported as a warning.
func (w *walker) verify() error {
	var unreachable []int
	for _, id := range w.sortedNodeIDs() {
		if !w.inTree(w.nodes[id]) {
			unreachable = append(unreachable, id)
		}
	}
	if len(unreachable) > 0 {
		return walkErr("verify", unreachable[0], ErrUnreachableNodes,
			"%d nodes unreachable: %v", len(unreachable), unreachable)
	}

	size, ok := w.src.DeclaredSize()
	if !ok {
		w.warn(WarnUnverifiable, 0, "no declared record count, absence of records not checked")
		return nil
	}
	if w.src.MaxGeneration() > 0 {
		w.warn(WarnUnverifiable, 0, "document has revised records, revisions not checked")
	}
	for id := 1; id < size; id++ {
		if n := w.nodes[id]; n != nil && w.inTree(n) {
			continue
		}
		w.explainAbsence(id)
	}
	return nil
}

// explainAbsence decides whether a declared record legitimately sits
// outside the tree. Scalars, object stream containers and their members,
// and cross-reference streams matching the trailer all have structural
// reasons not to appear; everything else earns a warning.
func (w *walker) explainAbsence(id int) {
	if container, ok := w.src.ObjectStreamFor(id); ok {
		w.log.Debugw("record was delivered inside an object stream",
			"id", id, "container", container)
		return
	}
	obj, err := w.src.Object(id)
	if err != nil {
		w.warn(WarnUnexplainedRecord, id,
			fmt.Sprintf("not in the tree and could not be fetched: %v", err))
		return
	}
	if core.IsScalar(obj) {
		w.log.Infow("record is a bare scalar, nothing references it as structure",
			"id", id, "value", obj)
		return
	}
	dict := dictOf(obj)
	if dict == nil {
		w.warn(WarnUnexplainedRecord, id, "not in the tree and not a dictionary")
		return
	}
	t, ok := dict.GetName("Type")
	if !ok {
		w.warn(WarnUnexplainedRecord, id, "not in the tree and carries no type")
		return
	}
	switch t.String() {
	case kindObjStm:
		w.log.Debugw("record is an object stream container, members are walked directly", "id", id)
	case kindXRef:
		if w.xrefMatchesTrailer(dict) {
			w.log.Infow("record is the cross-reference stream behind the trailer", "id", id)
			return
		}
		w.warn(WarnUnexplainedRecord, id, "cross-reference stream does not match the trailer")
	default:
		w.warn(WarnUnexplainedRecord, id,
			fmt.Sprintf("record of kind %s is not in the tree", t))
	}
}

// xrefMatchesTrailer reports whether a cross-reference stream dictionary
// restates the trailer. The trailer must name a hybrid cross-reference
// stream to begin with; /XRefStm and /Prev are bookkeeping the stream
// would not repeat, and the stream's declared size runs one short of the
// trailer's because the trailer counts itself.
func (w *walker) xrefMatchesTrailer(dict core.Dict) bool {
	trailer := dictOf(w.root.obj)
	if trailer == nil {
		return false
	}
	matches := trailer.Has("XRefStm")
	for _, k := range trailer.SortedKeys() {
		switch k {
		case "XRefStm", "Prev":
			continue
		case "Size":
			trailerSize, ok1 := trailer.GetInt("Size")
			xrefSize, ok2 := dict.GetInt("Size")
			if !ok1 || !ok2 || trailerSize != xrefSize+1 {
				matches = false
			}
		default:
			v := dict.Get(k)
			if v == nil || !core.ObjectsEqual(trailer.Get(k), v) {
				matches = false
			}
		}
	}
	return matches
}
