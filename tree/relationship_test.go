package tree

import (
	"testing"

	"github.com/tsawler/pdfprobe/core"
)

func relStrings(rels []*Relationship) []string {
	out := make([]string, len(rels))
	for i, r := range rels {
		out[i] = r.Key + "|" + r.Address + "|" + itoa(r.TargetID)
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestDiscoverReferences(t *testing.T) {
	n := newNode(core.Dict{
		"Kids":      core.Array{ref(3), ref(4)},
		"Parent":    ref(2),
		"Resources": core.Dict{"Font": core.Dict{"F1": ref(6)}},
		"Count":     core.Int(2),
	}, "/Pages", 10)

	got := relStrings(discoverReferences(n))
	want := []string{
		"/Kids|/Kids[0]|3",
		"/Kids|/Kids[1]|4",
		"/Parent|/Parent|2",
		"/Resources|/Resources[/Font][/F1]|6",
	}
	if len(got) != len(want) {
		t.Fatalf("discovered %d references %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reference %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDiscoverNumberTree(t *testing.T) {
	t.Run("well formed pairs", func(t *testing.T) {
		n := newNode(core.Dict{
			"Nums": core.Array{core.Int(0), ref(5), core.Int(4), ref(6)},
		}, "/PageLabels", 10)
		got := relStrings(discoverReferences(n))
		want := []string{"/Nums|/Nums[0]|5", "/Nums|/Nums[4]|6"}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("references = %v, want %v", got, want)
		}
	})
	t.Run("malformed array walked positionally", func(t *testing.T) {
		n := newNode(core.Dict{
			"Nums": core.Array{core.Int(0), ref(5), core.Int(9)},
		}, "/PageLabels", 10)
		got := relStrings(discoverReferences(n))
		if len(got) != 1 || got[0] != "/Nums|/Nums[1]|5" {
			t.Errorf("references = %v, want the positional address", got)
		}
	})
}

func TestDiscoverTopLevelArray(t *testing.T) {
	n := newNode(core.Array{ref(7), core.Int(1), ref(8)}, "[0]", 10)
	got := relStrings(discoverReferences(n))
	want := []string{
		UnlabeledElement + "|[0]|7",
		UnlabeledElement + "|[2]|8",
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("references = %v, want %v", got, want)
	}
}

func TestDiscoverStreamWalksHeader(t *testing.T) {
	n := newNode(&core.Stream{
		Dict: core.Dict{"Length": core.Int(10), "DecodeParms": core.Dict{"JBIG2Globals": ref(9)}},
		Data: []byte("xxxxxxxxxx"),
	}, "/Contents", 10)
	got := relStrings(discoverReferences(n))
	if len(got) != 1 || got[0] != "/DecodeParms|/DecodeParms[/JBIG2Globals]|9" {
		t.Errorf("references = %v, want the header reference", got)
	}
}

func TestRelationshipClassification(t *testing.T) {
	page := newNode(core.Dict{"Type": core.Name("Page")}, "/Kids[0]", 3)
	structElem := newNode(core.Dict{"Type": core.Name("StructElem")}, "/K[0]", 4)
	objRef := newNode(core.Dict{"Type": core.Name("OBJR")}, "/K[1]", 5)
	numsArray := newNode(core.Array{core.Int(0), ref(9)}, "/Nums[1]", 6)
	destValue := newNode(core.Int(3), "/D[0]", 7)
	gstateScalar := newNode(core.Int(3), "/ExtGState[0]", 8)
	gstateDict := newNode(core.Dict{"CA": core.Real(0.5)}, "/ExtGState[/GS1]", 9)

	tests := []struct {
		name              string
		rel               *Relationship
		wantParent        bool
		wantChild         bool
		wantLink          bool
		wantIndeterminate bool
	}{
		{
			name:       "parent key",
			rel:        &Relationship{From: page, Key: refParent, Address: "/Parent"},
			wantParent: true,
		},
		{
			name:       "structure element P is a parent key",
			rel:        &Relationship{From: structElem, Key: refP, Address: "/P"},
			wantParent: true,
		},
		{
			name: "P on anything else is ordinary",
			rel:  &Relationship{From: page, Key: refP, Address: "/P"},
		},
		{
			name:      "kids key",
			rel:       &Relationship{From: page, Key: refKids, Address: "/Kids[0]"},
			wantChild: true,
		},
		{
			name:      "structure element K is a child key",
			rel:       &Relationship{From: structElem, Key: refK, Address: "/K[0]"},
			wantChild: true,
		},
		{
			name:      "object reference Obj is a child key",
			rel:       &Relationship{From: objRef, Key: refObj, Address: "/Obj"},
			wantChild: true,
		},
		{
			name: "K on anything else is ordinary",
			rel:  &Relationship{From: page, Key: refK, Address: "/K[0]"},
		},
		{
			name:     "next is a link key",
			rel:      &Relationship{From: page, Key: refNext, Address: "/Next"},
			wantLink: true,
		},
		{
			name:              "link-labeled source makes any key a link",
			rel:               &Relationship{From: numsArray, Key: UnlabeledElement, Address: "[1]"},
			wantLink:          true,
			wantIndeterminate: true,
		},
		{
			name:              "font key defers placement",
			rel:               &Relationship{From: page, Key: refFont, Address: "/Font"},
			wantIndeterminate: true,
		},
		{
			name:     "destination-labeled source makes any key a link",
			rel:      &Relationship{From: destValue, Key: "/Q", Address: "/Q"},
			wantLink: true,
		},
		{
			name:              "deferred-kind scalar source passes ambiguity along",
			rel:               &Relationship{From: gstateScalar, Key: "/Q", Address: "/Q"},
			wantIndeterminate: true,
		},
		{
			name: "deferred-kind container does not",
			rel:  &Relationship{From: gstateDict, Key: "/Q", Address: "/Q"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rel.isParent(); got != tt.wantParent {
				t.Errorf("isParent() = %v, want %v", got, tt.wantParent)
			}
			if got := tt.rel.isChild(); got != tt.wantChild {
				t.Errorf("isChild() = %v, want %v", got, tt.wantChild)
			}
			if got := tt.rel.isLink(); got != tt.wantLink {
				t.Errorf("isLink() = %v, want %v", got, tt.wantLink)
			}
			if got := tt.rel.isIndeterminate(); got != tt.wantIndeterminate {
				t.Errorf("isIndeterminate() = %v, want %v", got, tt.wantIndeterminate)
			}
		})
	}
}
