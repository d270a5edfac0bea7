package core

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors returned by [Document.Object]. Wrap errors are produced
// with %w so callers can test with errors.Is.
var (
	// ErrObjectMissing means no object was registered under the requested id.
	ErrObjectMissing = errors.New("object missing")

	// ErrObjectCorrupt means the object exists but was marked undecodable.
	ErrObjectCorrupt = errors.New("object corrupt")
)

// maxResolveDepth bounds reference-chain following in Resolve.
const maxResolveDepth = 32

// Document is an in-memory store of decoded PDF objects keyed by object
// number, plus the trailer dictionary that anchors them. It stands in for
// the byte-level file reader: hosts (or test builders) populate it with
// already-decoded objects and the analysis layers consume it read-only.
//
// The zero value is not usable; construct with [NewDocument].
type Document struct {
	trailer Dict
	objects map[int]Object
	corrupt map[int]string
	members map[int]int
	maxGen  int
}

// NewDocument creates a Document anchored at the given trailer dictionary.
// A nil trailer is replaced with an empty one.
func NewDocument(trailer Dict) *Document {
	if trailer == nil {
		trailer = Dict{}
	}
	return &Document{
		trailer: trailer,
		objects: make(map[int]Object),
		corrupt: make(map[int]string),
		members: make(map[int]int),
	}
}

// Trailer returns the trailer dictionary.
func (d *Document) Trailer() Dict {
	return d.trailer
}

// Put registers obj under id with generation 0, replacing any previous
// registration.
func (d *Document) Put(id int, obj Object) {
	d.PutWithGeneration(id, 0, obj)
}

// PutWithGeneration registers obj under id and records the generation
// number. The document's maximum generation is the highest seen across
// all puts.
func (d *Document) PutWithGeneration(id, generation int, obj Object) {
	d.objects[id] = obj
	if generation > d.maxGen {
		d.maxGen = generation
	}
}

// PutIndirect registers an indirect object using the id and generation
// carried by its reference.
func (d *Document) PutIndirect(io IndirectObject) {
	d.PutWithGeneration(io.Ref.Number, io.Ref.Generation, io.Object)
}

// PutStreamMember registers obj under id and records that it lives inside
// the object stream with the given container id. Members resolve like any
// other object; the membership record exists so completeness checks can
// explain why the container's contents never appear as standalone nodes.
func (d *Document) PutStreamMember(containerID, id int, obj Object) {
	d.Put(id, obj)
	d.members[id] = containerID
}

// MarkCorrupt records that the object under id exists but could not be
// decoded. Object returns ErrObjectCorrupt for it afterwards.
func (d *Document) MarkCorrupt(id int, reason string) {
	d.corrupt[id] = reason
}

// Object resolves id to its object. The error wraps ErrObjectCorrupt for
// ids marked corrupt and ErrObjectMissing for unknown ids.
func (d *Document) Object(id int) (Object, error) {
	if reason, bad := d.corrupt[id]; bad {
		return nil, fmt.Errorf("object %d: %s: %w", id, reason, ErrObjectCorrupt)
	}
	obj, ok := d.objects[id]
	if !ok {
		return nil, fmt.Errorf("object %d: %w", id, ErrObjectMissing)
	}
	return obj, nil
}

// Has reports whether id is registered (even if marked corrupt).
func (d *Document) Has(id int) bool {
	if _, bad := d.corrupt[id]; bad {
		return true
	}
	_, ok := d.objects[id]
	return ok
}

// ResolveReference resolves an indirect reference to its object.
func (d *Document) ResolveReference(ref IndirectRef) (Object, error) {
	return d.Object(ref.Number)
}

// Resolve follows obj through any chain of indirect references until a
// direct object is reached. Cycles and chains longer than a fixed bound
// produce an error.
func (d *Document) Resolve(obj Object) (Object, error) {
	visited := make(map[int]bool)

	for depth := 0; depth < maxResolveDepth; depth++ {
		ref, ok := obj.(IndirectRef)
		if !ok {
			return obj, nil
		}
		if visited[ref.Number] {
			return nil, fmt.Errorf("circular reference at object %d", ref.Number)
		}
		visited[ref.Number] = true

		var err error
		obj, err = d.Object(ref.Number)
		if err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("reference chain exceeds %d levels", maxResolveDepth)
}

// DeclaredSize returns the trailer's /Size value: the object count the
// document claims, one higher than the largest valid object number. The
// second return is false when the trailer carries no /Size.
func (d *Document) DeclaredSize() (int, bool) {
	size, ok := d.trailer.GetInt("Size")
	if !ok {
		return 0, false
	}
	return int(size), true
}

// MaxGeneration returns the highest generation number registered.
func (d *Document) MaxGeneration() int {
	return d.maxGen
}

// ObjectStreamFor returns the container object stream id for a member
// object, if id was registered via PutStreamMember.
func (d *Document) ObjectStreamFor(id int) (int, bool) {
	container, ok := d.members[id]
	return container, ok
}

// IDs returns all registered object ids in ascending order.
func (d *Document) IDs() []int {
	ids := make([]int, 0, len(d.objects)+len(d.corrupt))
	for id := range d.objects {
		ids = append(ids, id)
	}
	for id := range d.corrupt {
		if _, dup := d.objects[id]; !dup {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of registered objects.
func (d *Document) Len() int {
	return len(d.objects)
}
