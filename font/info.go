// Package font unifies the information a document spreads across a
// font dictionary, its descriptor, and the embedded font program into
// one record per font. Program bytes are exposed raw so callers can
// run them through the decode package; glyph-level parsing is out of
// scope.
package font

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/pdfprobe/core"
	"github.com/tsawler/pdfprobe/tree"
)

// maxChain bounds reference-chain resolution so a reference loop in a
// hostile document cannot hang extraction.
const maxChain = 32

// Info unifies one font's dictionary, descriptor and embedded program.
type Info struct {
	ID    int    // record number of the font dictionary, 0 for inline fonts
	Label string // resource name the font is mapped under, e.g. "/F1"

	Subtype   string
	BaseFont  string
	FirstChar int // -1 when the font does not declare one
	LastChar  int // -1 when the font does not declare one
	Widths    []float64

	// Descriptor fields, zero-valued when the font has no descriptor.
	Flags       int
	BoundingBox []float64

	// Embedded program stream. Lengths holds the declared /Length1
	// through /Length3 section sizes, in order. Degraded means the
	// stream exists but its payload could not be decoded.
	Embedded         bool
	Lengths          []int
	AdvertisedLength int
	Payload          []byte
	Degraded         bool
}

// WidthStats summarizes a font's declared glyph widths.
type WidthStats struct {
	Min         float64
	Max         float64
	Count       int
	UniqueCount int
}

// Extract walks every placed node's resource dictionary and returns one
// Info per font, deduplicated by record number and sorted by it.
// Resource entries that do not resolve to a font dictionary are
// skipped; a program stream that fails to decode still yields an Info,
// flagged degraded.
func Extract(o *tree.Outline) []*Info {
	if o == nil {
		return nil
	}
	src := o.Source()
	seen := make(map[int]bool)
	var infos []*Info
	for _, n := range o.LevelOrder() {
		for _, info := range fromResources(src, n.Object()) {
			if info.ID > 0 {
				if seen[info.ID] {
					continue
				}
				seen[info.ID] = true
			}
			infos = append(infos, info)
		}
	}
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].ID != infos[j].ID {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].Label < infos[j].Label
	})
	return infos
}

// fromResources pulls every font out of the /Resources dictionary of
// one record, in resource-name order.
func fromResources(src tree.Source, obj core.Object) []*Info {
	d := dictOf(obj)
	if d == nil {
		return nil
	}
	resources, _ := resolveDict(src, d.Get("Resources"))
	if resources == nil {
		return nil
	}
	fonts, _ := resolveDict(src, resources.Get("Font"))
	if fonts == nil {
		return nil
	}
	var infos []*Info
	for _, name := range fonts.SortedKeys() {
		entry, id := resolve(src, fonts.Get(name))
		fontDict, ok := entry.(core.Dict)
		if !ok {
			continue
		}
		if t, ok := fontDict.GetName("Type"); !ok || t.String() != "/Font" {
			continue
		}
		infos = append(infos, build(src, "/"+name, id, fontDict))
	}
	return infos
}

// build assembles the Info for one font dictionary.
func build(src tree.Source, label string, id int, font core.Dict) *Info {
	info := &Info{ID: id, Label: label, FirstChar: -1, LastChar: -1}
	if s, ok := font.GetName("Subtype"); ok {
		info.Subtype = s.String()
	}
	if b, ok := font.GetName("BaseFont"); ok {
		info.BaseFont = b.String()
	}
	if v, ok := font.GetInt("FirstChar"); ok {
		info.FirstChar = int(v)
	}
	if v, ok := font.GetInt("LastChar"); ok {
		info.LastChar = int(v)
	}

	// Simple fonts declare /Widths, CID fonts declare /W.
	widths := font.Get("Widths")
	if widths == nil {
		widths = font.Get("W")
	}
	if resolved, _ := resolve(src, widths); resolved != nil {
		if arr, ok := resolved.(core.Array); ok {
			info.Widths = collectNumbers(src, arr, nil)
		}
	}

	descriptor, _ := resolveDict(src, font.Get("FontDescriptor"))
	if descriptor == nil {
		return info
	}
	if v, ok := descriptor.GetInt("Flags"); ok {
		info.Flags = int(v)
	}
	if bbox, ok := descriptor.GetArray("FontBBox"); ok {
		info.BoundingBox = collectNumbers(src, bbox, nil)
	}

	program := fontProgram(src, descriptor)
	if program == nil {
		return info
	}
	info.Embedded = true
	for _, key := range []string{"Length1", "Length2", "Length3"} {
		if v, ok := program.Dict.GetInt(key); ok {
			info.Lengths = append(info.Lengths, int(v))
			info.AdvertisedLength += int(v)
		}
	}
	payload, err := program.Decoded()
	if err != nil {
		info.Degraded = true
		return info
	}
	info.Payload = payload
	return info
}

// fontProgram returns the embedded program stream. A descriptor names
// its program under exactly one of /FontFile, /FontFile2 or /FontFile3;
// a descriptor with more than one is ambiguous and treated as carrying
// none.
func fontProgram(src tree.Source, descriptor core.Dict) *core.Stream {
	var keys []string
	for _, k := range descriptor.SortedKeys() {
		if strings.HasPrefix(k, "FontFile") {
			keys = append(keys, k)
		}
	}
	if len(keys) != 1 {
		return nil
	}
	obj, _ := resolve(src, descriptor.Get(keys[0]))
	if s, ok := obj.(*core.Stream); ok {
		return s
	}
	return nil
}

// WidthStats returns min, max, count and distinct count over the
// declared widths. A font with no width data answers the zero value.
func (i *Info) WidthStats() WidthStats {
	if len(i.Widths) == 0 {
		return WidthStats{}
	}
	stats := WidthStats{Min: i.Widths[0], Max: i.Widths[0], Count: len(i.Widths)}
	unique := make(map[float64]bool, len(i.Widths))
	for _, w := range i.Widths {
		if w < stats.Min {
			stats.Min = w
		}
		if w > stats.Max {
			stats.Max = w
		}
		unique[w] = true
	}
	stats.UniqueCount = len(unique)
	return stats
}

// String returns a one-line title like "12. Font /F1 (TrueType)".
func (i *Info) String() string {
	if i.Subtype == "" {
		return fmt.Sprintf("%d. Font %s (unknown type)", i.ID, i.Label)
	}
	return fmt.Sprintf("%d. Font %s (%s)", i.ID, i.Label, strings.TrimPrefix(i.Subtype, "/"))
}

// resolve follows reference chains to a concrete object, remembering
// the last record number traversed. Direct objects answer id 0; a
// missing record or a chain longer than maxChain answers nil.
func resolve(src tree.Source, obj core.Object) (core.Object, int) {
	id := 0
	for depth := 0; obj != nil && depth < maxChain; depth++ {
		ref, ok := obj.(core.IndirectRef)
		if !ok {
			return obj, id
		}
		id = ref.Number
		next, err := src.Object(ref.Number)
		if err != nil {
			return nil, id
		}
		obj = next
	}
	return nil, id
}

// resolveDict resolves obj and returns it as a dictionary, or nil.
func resolveDict(src tree.Source, obj core.Object) (core.Dict, int) {
	resolved, id := resolve(src, obj)
	if d, ok := resolved.(core.Dict); ok {
		return d, id
	}
	return nil, id
}

// collectNumbers flattens every numeric entry of arr into out,
// descending into nested arrays and following references, in document
// order.
func collectNumbers(src tree.Source, arr core.Array, out []float64) []float64 {
	for i := 0; i < arr.Len(); i++ {
		entry, _ := resolve(src, arr.Get(i))
		switch v := entry.(type) {
		case core.Int:
			out = append(out, float64(v))
		case core.Real:
			out = append(out, float64(v))
		case core.Array:
			out = collectNumbers(src, v, out)
		}
	}
	return out
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
