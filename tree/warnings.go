package tree

import "fmt"

// WarningKind classifies the non-fatal findings a build can produce.
type WarningKind int

const (
	// WarnWeakEvidence flags a deferred record placed on descendant
	// count alone, with no stronger heuristic agreeing.
	WarnWeakEvidence WarningKind = iota

	// WarnLooseContainment flags containment that violates the usual
	// conventions, such as a page container referenced only by leaf
	// pages.
	WarnLooseContainment

	// WarnDegradedStream flags a stream payload that could not be
	// decoded.
	WarnDegradedStream

	// WarnDegradedRecord flags a record that could not be fetched; its
	// node carries no object data.
	WarnDegradedRecord

	// WarnAdoptedStray flags a record the repair pass attached to the
	// tree by convention rather than by an explicit reference.
	WarnAdoptedStray

	// WarnUnexplainedRecord flags a declared record that is neither in
	// the tree nor accounted for by any known structural role.
	WarnUnexplainedRecord

	// WarnUnverifiable flags a check the verifier had to skip, for
	// example when the document declares no record count.
	WarnUnverifiable
)

func (k WarningKind) String() string {
	switch k {
	case WarnWeakEvidence:
		return "weak-evidence"
	case WarnLooseContainment:
		return "loose-containment"
	case WarnDegradedStream:
		return "degraded-stream"
	case WarnDegradedRecord:
		return "degraded-record"
	case WarnAdoptedStray:
		return "adopted-stray"
	case WarnUnexplainedRecord:
		return "unexplained-record"
	case WarnUnverifiable:
		return "unverifiable"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a non-fatal finding produced while building an outline. A
// zero NodeID means the warning concerns the document rather than one
// record.
type Warning struct {
	Kind    WarningKind
	NodeID  int
	Message string
}

func (w Warning) String() string {
	if w.NodeID == 0 {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: node %d: %s", w.Kind, w.NodeID, w.Message)
}
