package tree

import (
	"regexp"
	"strings"
)

const (
	// TrailerFallbackID is the synthetic object number given to the trailer
	// node when the trailer carries no /Size entry. Real object numbers are
	// small; this value stays clear of them.
	TrailerFallbackID = 10_000_000

	// DecodeFailureLength is the stream length recorded on a node whose
	// stream payload could not be decoded.
	DecodeFailureLength = -1

	// TrailerLabel is the label of the synthetic root node.
	TrailerLabel = "/Trailer"

	// UnlabeledElement labels nodes and references that reach a bare array
	// element with no name of its own.
	UnlabeledElement = "/UnlabeledArrayElement"
)

const (
	defaultMaxAddressLength   = 90
	nodeCountWarnThreshold    = 10_000
	missingCountWarnThreshold = 200
)

// Reference keys and record kinds as they appear in documents, with the
// leading slash. Dictionary lookups against core.Dict drop the slash.
const (
	refParent     = "/Parent"
	refKids       = "/Kids"
	refK          = "/K"
	refP          = "/P"
	refObj        = "/Obj"
	refFirst      = "/First"
	refLast       = "/Last"
	refNext       = "/Next"
	refPrev       = "/Prev"
	refD          = "/D"
	refDest       = "/Dest"
	refOpenAction = "/OpenAction"
	refNums       = "/Nums"
	refColorSpace = "/ColorSpace"
	refExtGState  = "/ExtGState"
	refFont       = "/Font"
	refResources  = "/Resources"
	refXObject    = "/XObject"

	kindStructElem = "/StructElem"
	kindObjR       = "/OBJR"
	kindPage       = "/Page"
	kindPages      = "/Pages"
	kindCatalog    = "/Catalog"
	kindXRef       = "/XRef"
	kindObjStm     = "/ObjStm"
)

// nonTreeKeys never assign ownership; they are navigation pointers between
// records that already have homes elsewhere.
var nonTreeKeys = map[string]bool{
	refOpenAction: true,
	refD:          true,
	refDest:       true,
	refFirst:      true,
	refLast:       true,
	refNext:       true,
	refPrev:       true,
}

// indeterminateKeys mark references whose true owner cannot be decided
// until the whole graph has been walked: shared resource containers and
// similar multiply-referenced structures.
var indeterminateKeys = map[string]bool{
	refColorSpace:    true,
	refD:             true,
	refDest:          true,
	refExtGState:     true,
	refFont:          true,
	refOpenAction:    true,
	refResources:     true,
	refXObject:       true,
	UnlabeledElement: true,
}

// indeterminateKindPrefixes flag source records whose own kind marks their
// outgoing references as deferred, provided the record is not a container.
// The bare /D key is deliberately absent: as a prefix it would swallow
// unrelated kinds like /DR.
var indeterminateKindPrefixes = []string{
	refColorSpace,
	refDest,
	refExtGState,
	refFont,
	refOpenAction,
	refResources,
	refXObject,
	UnlabeledElement,
}

// linkLabelPrefixes mark source nodes whose outgoing references are links
// rather than ownership: number-tree value arrays and destination arrays.
var linkLabelPrefixes = []string{refNums, refD, refDest}

var digitRun = regexp.MustCompile(`\d+`)

// rootAddress strips the bracketed part off an address:
// "/Kids[2]" becomes "/Kids".
func rootAddress(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// replaceDigits turns every digit run in s into a single "x".
func replaceDigits(s string) string {
	return digitRun.ReplaceAllString(s, "x")
}

// allSameIgnoringDigits reports whether the strings are identical once
// digit runs are masked out.
func allSameIgnoringDigits(strs []string) bool {
	if len(strs) == 0 {
		return true
	}
	first := replaceDigits(strs[0])
	for _, s := range strs[1:] {
		if replaceDigits(s) != first {
			return false
		}
	}
	return true
}

// haveCommonSubstring reports whether every string is a substring of every
// strictly longer string in the list. A list of equal-length strings has no
// longer strings to check against, so it passes vacuously.
func haveCommonSubstring(strs []string) bool {
	for _, s := range strs {
		for _, longer := range strs {
			if len(longer) > len(s) && !strings.Contains(longer, s) {
				return false
			}
		}
	}
	return true
}

// prefixedByAny reports whether s starts with any of the prefixes.
func prefixedByAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// hasLinkLabelPrefix matches a node label against the link prefixes on key
// boundaries: the label must be the prefix itself or continue with an
// array index, so "/D[0]" matches /D but "/DR" does not.
func hasLinkLabelPrefix(label string) bool {
	for _, p := range linkLabelPrefixes {
		if label == p || strings.HasPrefix(label, p+"[") {
			return true
		}
	}
	return false
}
