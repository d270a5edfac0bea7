package pdfprobe

import (
	"strings"

	"github.com/tsawler/pdfprobe/tree"
)

// Warning is one non-fatal finding from an analysis run. It aliases
// [tree.Warning] so findings flow through the fluent API unchanged.
type Warning = tree.Warning

// WarningKind classifies warnings.
type WarningKind = tree.WarningKind

// Warning kinds, re-exported so hosts can filter findings without
// importing the tree package.
const (
	// WarnWeakEvidence flags a deferred record placed on descendant
	// count alone.
	WarnWeakEvidence = tree.WarnWeakEvidence

	// WarnLooseContainment flags containment that violates the format's
	// usual conventions.
	WarnLooseContainment = tree.WarnLooseContainment

	// WarnDegradedStream flags a stream payload that could not be
	// decoded.
	WarnDegradedStream = tree.WarnDegradedStream

	// WarnDegradedRecord flags a record that could not be fetched.
	WarnDegradedRecord = tree.WarnDegradedRecord

	// WarnAdoptedStray flags a record attached to the tree by
	// convention rather than by an explicit reference.
	WarnAdoptedStray = tree.WarnAdoptedStray

	// WarnUnexplainedRecord flags a declared record that is neither in
	// the tree nor accounted for by any known structural role.
	WarnUnexplainedRecord = tree.WarnUnexplainedRecord

	// WarnUnverifiable flags a check the verifier had to skip.
	WarnUnverifiable = tree.WarnUnverifiable
)

// FormatWarnings renders warnings one per line, for logging.
//
// Example:
//
//	outline, warnings, err := pdfprobe.ForDocument(doc).Outline()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:\n" + pdfprobe.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
