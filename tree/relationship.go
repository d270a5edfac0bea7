package tree

import (
	"fmt"
	"strconv"

	"github.com/tsawler/pdfprobe/core"
)

// RelationKind is the classification of one reference between records.
type RelationKind int

const (
	// RelationParent marks an explicit upward pointer: the target is the
	// source's parent.
	RelationParent RelationKind = iota

	// RelationChild marks an explicit downward pointer: the target
	// belongs under the source.
	RelationChild

	// RelationNonTree marks a navigation link that never assigns
	// ownership.
	RelationNonTree

	// RelationIndeterminate marks a reference whose ownership cannot be
	// decided until the whole graph has been walked.
	RelationIndeterminate
)

func (k RelationKind) String() string {
	switch k {
	case RelationParent:
		return "parent"
	case RelationChild:
		return "child"
	case RelationNonTree:
		return "non-tree"
	case RelationIndeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("RelationKind(%d)", int(k))
	}
}

// Relationship is one reference discovered inside a source node's object.
// Key is the top-level dictionary key the reference descends from, with
// its leading slash; Address is the full path within the source object,
// such as "/Kids[2]" or "/Resources[/Font][/F1]".
type Relationship struct {
	From     *Node
	TargetID int
	Key      string
	Address  string
}

func (r *Relationship) String() string {
	return fmt.Sprintf("%s -> %d (key=%s, address=%s)", r.From, r.TargetID, r.Key, r.Address)
}

func (r *Relationship) equal(o *Relationship) bool {
	return r.From.id == o.From.id &&
		r.TargetID == o.TargetID &&
		r.Key == o.Key &&
		r.Address == o.Address
}

// isParent reports an explicit upward pointer: /Parent anywhere, or /P on
// a structure element.
func (r *Relationship) isParent() bool {
	return r.Key == refParent ||
		(r.From.kind == kindStructElem && r.Key == refP)
}

// isChild reports an explicit downward pointer: /Kids anywhere, /K on a
// structure element, or /Obj on an object reference record.
func (r *Relationship) isChild() bool {
	return r.Key == refKids ||
		(r.From.kind == kindStructElem && r.Key == refK) ||
		(r.From.kind == kindObjR && r.Key == refObj)
}

// isLink reports a pure navigation pointer, either by the reference key or
// by the source node's label marking everything it points at as linked.
func (r *Relationship) isLink() bool {
	return nonTreeKeys[r.Key] || hasLinkLabelPrefix(r.From.label)
}

// isIndeterminate reports a reference whose owner must be chosen later:
// the key names a shared structure, or the source is itself a deferred
// scalar record passing its ambiguity along.
func (r *Relationship) isIndeterminate() bool {
	if indeterminateKeys[r.Key] {
		return true
	}
	return prefixedByAny(r.From.kind, indeterminateKindPrefixes) &&
		!core.IsContainer(r.From.obj)
}

// discoverReferences walks from's object and returns every indirect
// reference it contains, in deterministic order: dictionary keys are
// visited sorted, array elements in position order.
func discoverReferences(from *Node) []*Relationship {
	if from.obj == nil {
		return nil
	}
	return discoverIn(from, from.obj, "", "")
}

// discoverIn recurses through obj collecting references. rootKey is the
// top-level key the walk descended from, empty at the top; address is the
// path accumulated so far.
func discoverIn(from *Node, obj core.Object, rootKey, address string) []*Relationship {
	switch o := obj.(type) {
	case core.IndirectRef:
		return []*Relationship{{
			From:     from,
			TargetID: o.Number,
			Key:      rootKey,
			Address:  address,
		}}

	case core.Array:
		key := rootKey
		if key == "" {
			key = UnlabeledElement
		}
		var refs []*Relationship
		for i, item := range o {
			addr := address + "[" + strconv.Itoa(i) + "]"
			refs = append(refs, discoverIn(from, item, key, addr)...)
		}
		return refs

	case core.Dict:
		var refs []*Relationship
		for _, k := range o.SortedKeys() {
			slashKey := "/" + k
			key := rootKey
			if key == "" {
				key = slashKey
			}
			addr := buildAddress(address, slashKey)
			if slashKey == refNums {
				if pairs, ok := numberTreePairs(o[k]); ok {
					for _, p := range pairs {
						pairAddr := addr + "[" + strconv.Itoa(p.index) + "]"
						refs = append(refs, discoverIn(from, p.value, key, pairAddr)...)
					}
					continue
				}
			}
			refs = append(refs, discoverIn(from, o[k], key, addr)...)
		}
		return refs

	case *core.Stream:
		return discoverIn(from, o.Dict, rootKey, address)
	}
	return nil
}

// buildAddress appends a dictionary key to an address: the first key
// stands alone, deeper keys are bracketed.
func buildAddress(base, key string) string {
	if base == "" {
		return key
	}
	return base + "[" + key + "]"
}

type numberTreePair struct {
	index int
	value core.Object
}

// numberTreePairs interprets a /Nums array as alternating integer keys and
// values, so each value is addressed by its number rather than its slot.
// Arrays that do not fit the shape are walked normally.
func numberTreePairs(obj core.Object) ([]numberTreePair, bool) {
	arr, ok := obj.(core.Array)
	if !ok || len(arr)%2 != 0 {
		return nil, false
	}
	pairs := make([]numberTreePair, 0, len(arr)/2)
	for i := 0; i+1 < len(arr); i += 2 {
		num, ok := arr[i].(core.Int)
		if !ok {
			return nil, false
		}
		pairs = append(pairs, numberTreePair{index: int(num), value: arr[i+1]})
	}
	return pairs, true
}
