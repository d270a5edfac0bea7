package tree

import (
	"errors"
	"testing"

	"github.com/tsawler/pdfprobe/core"
)

func TestResolveCommonAncestor(t *testing.T) {
	// The font is referenced by the page tree and by one of its own
	// pages. The page tree sits above every referrer, so it adopts the
	// node and no warning is needed.
	doc := buildDoc(
		core.Dict{"Size": core.Int(5), "Root": ref(1)},
		map[int]core.Object{
			1: core.Dict{"Type": core.Name("Catalog"), "Pages": ref(2)},
			2: core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(3)}, "Font": ref(4)},
			3: core.Dict{"Type": core.Name("Page"), "Parent": ref(2), "Font": ref(4)},
			4: core.Dict{},
		},
	)
	outline, warnings, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if p := outline.Node(4).Parent(); p == nil || p.ID() != 2 {
		t.Errorf("node 4 parent = %v, want the page tree", p)
	}
}

func TestResolveSingleChildListReferrer(t *testing.T) {
	// Node 5 is deferred through /Font from one sibling and then named
	// in a /K entry by another. Only the child-list reference carries
	// placement weight.
	doc := buildDoc(
		core.Dict{"Size": core.Int(6), "Root": ref(1)},
		map[int]core.Object{
			1: core.Dict{"Type": core.Name("Catalog"), "Pages": ref(2)},
			2: core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(3)}, "Stamp": ref(4)},
			3: core.Dict{"Type": core.Name("Page"), "Parent": ref(2), "Font": ref(5)},
			4: core.Dict{"K": ref(5)},
			5: core.Dict{},
		},
	)
	outline, warnings, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if p := outline.Node(5).Parent(); p == nil || p.ID() != 4 {
		t.Errorf("node 5 parent = %v, want node 4", p)
	}
	// The font reference survives as a symlink once node 4 owns the node.
	found := false
	for _, e := range outline.Symlinks() {
		if e.From.ID() == 3 && e.To.ID() == 5 && e.Address == "/Font" {
			found = true
		}
	}
	if !found {
		t.Errorf("symlinks = %v, want 3 ~> 5 @/Font", outline.Symlinks())
	}
}

func TestResolveSingleStructuralReferrer(t *testing.T) {
	// Node 5 is referenced by a destination record, whose kind marks it
	// as pure navigation, and by a page. The page is the only referrer
	// with structural standing.
	doc := buildDoc(
		core.Dict{"Size": core.Int(6), "Root": ref(1)},
		map[int]core.Object{
			1: core.Dict{"Type": core.Name("Catalog"), "Dest": ref(4), "Pages": ref(2)},
			2: core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(3)}},
			3: core.Dict{"Type": core.Name("Page"), "Parent": ref(2), "ExtGState": ref(5)},
			4: core.Dict{"Zray": ref(5)},
			5: core.Dict{},
		},
	)
	outline, warnings, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if hasWarning(warnings, WarnWeakEvidence) {
		t.Errorf("warnings = %v, want no weak-evidence warning", warnings)
	}
	if p := outline.Node(5).Parent(); p == nil || p.ID() != 3 {
		t.Errorf("node 5 parent = %v, want the page", p)
	}
}

func TestResolveResourcesOwner(t *testing.T) {
	// A shared resource dictionary is referenced by a page tree, by a
	// page under that tree, and incidentally by an unrelated record.
	// Among the resource-keyed referrers the page tree is outermost, so
	// it owns the container.
	doc := buildDoc(
		core.Dict{"Size": core.Int(6), "Root": ref(1)},
		map[int]core.Object{
			1: core.Dict{"Type": core.Name("Catalog"), "Pages": ref(2), "Stuff": ref(4)},
			2: core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(3)}, "Resources": ref(5)},
			3: core.Dict{"Type": core.Name("Page"), "Parent": ref(2), "Resources": ref(5)},
			4: core.Dict{"Gadget": ref(5)},
			5: core.Dict{"ProcSet": core.Array{core.Name("PDF")}},
		},
	)
	outline, warnings, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if p := outline.Node(5).Parent(); p == nil || p.ID() != 2 {
		t.Errorf("resources parent = %v, want the page tree", p)
	}
	found := false
	for _, e := range outline.Symlinks() {
		if e.From.ID() == 4 && e.To.ID() == 5 {
			found = true
		}
	}
	if !found {
		t.Errorf("symlinks = %v, want 4 ~> 5", outline.Symlinks())
	}
}

func TestResolveWeakEvidenceFallback(t *testing.T) {
	// Five siblings of five different kinds each reference node 8
	// through a different deferred key. Nothing stronger than descendant
	// counting applies, everything ties at zero, and the lowest id wins
	// with a warning attached.
	doc := buildDoc(
		core.Dict{"Size": core.Int(9), "Root": ref(1)},
		map[int]core.Object{
			1: core.Dict{"Type": core.Name("Catalog"), "Pages": ref(2)},
			2: core.Dict{
				"Type": core.Name("Pages"),
				"Kids": core.Array{ref(3), ref(4), ref(5), ref(6), ref(7)},
			},
			3: core.Dict{"Type": core.Name("Annot"), "Subtype": core.Name("Link"), "ExtGState": ref(8)},
			4: core.Dict{"Type": core.Name("Font"), "Dest": ref(8)},
			5: core.Dict{"Type": core.Name("XObject"), "Subtype": core.Name("Image"), "Font": ref(8)},
			6: core.Dict{"Type": core.Name("Metadata"), "Subtype": core.Name("XML"), "XObject": ref(8)},
			7: core.Dict{"Type": core.Name("Filespec"), "ColorSpace": ref(8)},
			8: core.Dict{},
		},
	)
	outline, warnings, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !hasWarning(warnings, WarnWeakEvidence) {
		t.Fatalf("warnings = %v, want a weak-evidence warning", warnings)
	}
	for _, w := range warnings {
		if w.Kind == WarnWeakEvidence && w.NodeID != 8 {
			t.Errorf("weak-evidence warning node = %d, want 8", w.NodeID)
		}
	}
	if p := outline.Node(8).Parent(); p == nil || p.ID() != 3 {
		t.Errorf("node 8 parent = %v, want node 3 (lowest id among tied referrers)", p)
	}
}

func TestResolveSimilarReferrersNoWarning(t *testing.T) {
	// Three pages reference the same node the same way. The referrers
	// all look alike, so descendant-count placement is considered well
	// justified and stays quiet.
	doc := buildDoc(
		core.Dict{"Size": core.Int(7), "Root": ref(1)},
		map[int]core.Object{
			1: core.Dict{"Type": core.Name("Catalog"), "Pages": ref(2)},
			2: core.Dict{"Type": core.Name("Pages"), "Kids": core.Array{ref(3), ref(4), ref(5)}},
			3: core.Dict{"Type": core.Name("Page"), "Parent": ref(2), "Font": ref(6)},
			4: core.Dict{"Type": core.Name("Page"), "Parent": ref(2), "Font": ref(6)},
			5: core.Dict{"Type": core.Name("Page"), "Parent": ref(2), "Font": ref(6)},
			6: core.Dict{},
		},
	)
	outline, warnings, err := Build(doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if p := outline.Node(6).Parent(); p == nil || p.ID() != 3 {
		t.Errorf("node 6 parent = %v, want node 3 (lowest id among tied referrers)", p)
	}
}

func TestResolveHeuristicsExhausted(t *testing.T) {
	// Node 3's only referrer lives inside node 3's own subtree, so
	// every candidate would create a cycle and resolution must fail
	// fatally rather than guess.
	doc := buildDoc(
		core.Dict{"Size": core.Int(5), "OpenAction": ref(2)},
		map[int]core.Object{
			2: core.Dict{"Parent": ref(3), "Stuff": ref(4)},
			3: core.Dict{},
			4: core.Dict{"Font": ref(3)},
		},
	)
	_, _, err := Build(doc)
	if !errors.Is(err, ErrHeuristicsExhausted) {
		t.Fatalf("Build() error = %v, want ErrHeuristicsExhausted", err)
	}
	var walkErr *WalkError
	if errors.As(err, &walkErr) && walkErr.NodeID != 3 {
		t.Errorf("WalkError.NodeID = %d, want 3", walkErr.NodeID)
	}
}
