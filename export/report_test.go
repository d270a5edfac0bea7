package export

import (
	"sort"
	"testing"

	"github.com/tsawler/pdfprobe/core"
	"github.com/tsawler/pdfprobe/tree"
)

func ref(n int) core.IndirectRef {
	return core.IndirectRef{Number: n}
}

// outlineWithSymlink builds an outline whose first outline item points
// at the second through /Next, yielding one symlink, and declares one
// record that never appears, yielding one warning.
func outlineWithSymlink(t *testing.T) *tree.Outline {
	t.Helper()
	doc := core.NewDocument(core.Dict{"Size": core.Int(6), "Root": ref(1)})
	doc.Put(1, core.Dict{"Type": core.Name("Catalog"), "Outlines": ref(2)})
	doc.Put(2, core.Dict{"Type": core.Name("Outlines"), "First": ref(3), "Last": ref(4)})
	doc.Put(3, core.Dict{"Parent": ref(2), "Next": ref(4)})
	doc.Put(4, core.Dict{"Parent": ref(2)})
	doc.Put(5, core.Dict{"Type": core.Name("Font")})

	outline, _, err := tree.Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return outline
}

func TestFromOutlineNil(t *testing.T) {
	if got := FromOutline(nil); got != nil {
		t.Errorf("FromOutline(nil) = %v, want nil", got)
	}
}

func TestFromOutlineRows(t *testing.T) {
	r := FromOutline(outlineWithSymlink(t))

	if r.RunID == "" {
		t.Error("report has no run id")
	}
	if r.GeneratedAt.IsZero() {
		t.Error("report has no timestamp")
	}
	if len(r.Nodes) != 5 {
		t.Fatalf("report has %d node rows, want 5", len(r.Nodes))
	}
	if !sort.SliceIsSorted(r.Nodes, func(i, j int) bool { return r.Nodes[i].ID < r.Nodes[j].ID }) {
		t.Errorf("node rows not sorted by id: %v", r.Nodes)
	}

	byID := make(map[int]NodeRow, len(r.Nodes))
	for _, row := range r.Nodes {
		byID[row.ID] = row
	}
	if row := byID[2]; row.ParentID != 1 || row.ChildCount != 2 || row.Kind != "/Outlines" {
		t.Errorf("outline root row = %+v, want parent 1 with 2 children", row)
	}
	if row := byID[6]; row.Label != "/Trailer" || row.ParentID != 0 {
		t.Errorf("trailer row = %+v, want the parentless trailer", row)
	}
}

func TestFromOutlineSymlinksAndWarnings(t *testing.T) {
	r := FromOutline(outlineWithSymlink(t))

	if len(r.Symlinks) != 1 {
		t.Fatalf("report has %d symlinks, want 1: %v", len(r.Symlinks), r.Symlinks)
	}
	link := r.Symlinks[0]
	if link.FromID != 3 || link.ToID != 4 || link.Address != "/Next" {
		t.Errorf("symlink row = %+v, want 3 -> 4 at /Next", link)
	}

	if len(r.Warnings) != 1 {
		t.Fatalf("report has %d warnings, want 1: %v", len(r.Warnings), r.Warnings)
	}
	warn := r.Warnings[0]
	if warn.Kind != "unexplained-record" || warn.NodeID != 5 {
		t.Errorf("warning row = %+v, want an unexplained record for node 5", warn)
	}
	if r.Document.SymlinkCount != 1 || r.Document.WarningCount != 1 {
		t.Errorf("document stats = %+v, want one symlink and one warning", r.Document)
	}
}

func TestFromOutlineDocumentStats(t *testing.T) {
	doc := core.NewDocument(core.Dict{"Size": core.Int(3), "Root": ref(1)})
	doc.Put(1, core.Dict{"Type": core.Name("Catalog"), "Metadata": ref(2)})
	doc.PutWithGeneration(2, 1, &core.Stream{
		Dict: core.Dict{"Length": core.Int(4)},
		Data: []byte("abcd"),
	})

	outline, _, err := tree.Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r := FromOutline(outline)

	if r.Document.DeclaredSize != 3 {
		t.Errorf("DeclaredSize = %d, want 3", r.Document.DeclaredSize)
	}
	if r.Document.MaxGeneration != 1 {
		t.Errorf("MaxGeneration = %d, want 1", r.Document.MaxGeneration)
	}
	if r.Document.StreamCount != 1 || r.Document.StreamBytes != 4 {
		t.Errorf("stream stats = (%d, %d), want (1, 4)",
			r.Document.StreamCount, r.Document.StreamBytes)
	}
	byID := make(map[int]NodeRow, len(r.Nodes))
	for _, row := range r.Nodes {
		byID[row.ID] = row
	}
	if row := byID[2]; row.StreamLength != 4 {
		t.Errorf("stream row = %+v, want stream length 4", row)
	}
}
