// Package pdfprobe provides a fluent API for auditing the internal object
// graph of a PDF document. Every record reachable from the trailer is
// placed into one canonical tree, references that confer no ownership
// surface as labeled symlink edges, and anything the analysis could not
// settle on strong evidence comes back as a warning rather than being
// silenced.
//
// Basic usage:
//
//	outline, warnings, err := pdfprobe.ForDocument(doc).Outline()
//	if err != nil {
//	    // the object graph contradicts itself; err is a *tree.WalkError
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfprobe.FormatWarnings(warnings))
//	}
//	outline.Dump(os.Stdout)
//
// With options:
//
//	report, _, err := pdfprobe.ForDocument(doc).
//	    WithLogger(pdfprobe.DefaultLogger()).
//	    WithMaxNodes(50_000).
//	    Report()
//
// For advanced use cases, the lower-level tree package is also available.
package pdfprobe

import (
	"go.uber.org/zap"

	"github.com/tsawler/pdfprobe/core"
	"github.com/tsawler/pdfprobe/export"
	"github.com/tsawler/pdfprobe/font"
	"github.com/tsawler/pdfprobe/tree"
)

// ForDocument starts an analysis of an already-decoded document and
// returns a Probe for fluent configuration. The document is read, never
// modified; each terminal operation runs a fresh analysis.
//
// Example:
//
//	outline, warnings, err := pdfprobe.ForDocument(doc).Outline()
func ForDocument(doc *core.Document) *Probe {
	p := &Probe{doc: doc, options: defaultOptions()}
	if doc == nil {
		p.err = ErrNoDocument
	}
	return p
}

// Probe provides a fluent interface for analyzing a document's object
// graph. Each configuration method returns a new Probe instance, making
// it safe for concurrent use and allowing method chaining.
type Probe struct {
	// Source
	doc *core.Document

	// Configuration
	options probeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Probe with a copy of its options.
// This ensures immutability - each chain method returns a new instance.
func (p *Probe) clone() *Probe {
	return &Probe{
		doc:     p.doc,
		options: p.options.clone(),
		err:     p.err,
	}
}

// ============================================================================
// Configuration Methods (return new Probe instance)
// ============================================================================

// WithLogger routes analysis diagnostics to l. The default discards
// them; DefaultLogger builds a ready-made development logger.
//
// Example:
//
//	outline, _, err := pdfprobe.ForDocument(doc).
//	    WithLogger(pdfprobe.DefaultLogger()).
//	    Outline()
func (p *Probe) WithLogger(l *zap.Logger) *Probe {
	newProbe := p.clone()
	newProbe.options.logger = l
	return newProbe
}

// WithMaxNodes aborts the analysis once more than n nodes have been
// constructed, bounding the walk on hostile documents that declare far
// more structure than they should. Zero means no limit.
//
// Example:
//
//	outline, _, err := pdfprobe.ForDocument(doc).WithMaxNodes(50_000).Outline()
func (p *Probe) WithMaxNodes(n int) *Probe {
	newProbe := p.clone()
	newProbe.options.maxNodes = n
	return newProbe
}

// ============================================================================
// Terminal Operations (run the analysis and return results)
// ============================================================================

// Outline builds the canonical tree of the document's object graph.
//
// Returns the outline, any warnings encountered during analysis, and an
// error if the graph contradicts itself. Warnings indicate non-fatal
// findings (weak-evidence placements, undecodable streams, unexplained
// records) where analysis succeeded but the document deserves a closer
// look.
//
// Example:
//
//	outline, warnings, err := pdfprobe.ForDocument(doc).Outline()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfprobe.FormatWarnings(warnings))
//	}
func (p *Probe) Outline() (*tree.Outline, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	return tree.Build(p.doc, p.options.treeOptions()...)
}

// Summary builds the outline and returns its aggregate tallies: node
// counts by kind and label, dictionary key frequency, and stream totals.
//
// Example:
//
//	summary, _, err := pdfprobe.ForDocument(doc).Summary()
//	fmt.Printf("%d nodes, %d symlinks\n", summary.NodeCount, summary.SymlinkCount)
func (p *Probe) Summary() (tree.Summary, []Warning, error) {
	outline, warnings, err := p.Outline()
	if err != nil {
		return tree.Summary{}, warnings, err
	}
	return outline.Summary(), warnings, nil
}

// Report builds the outline and flattens it into a serializable report
// carrying a fresh run id. Encode it with the export package.
//
// Example:
//
//	report, _, err := pdfprobe.ForDocument(doc).Report()
//	export.NewWriter().Write(report, os.Stdout)
func (p *Probe) Report() (*export.Report, []Warning, error) {
	outline, warnings, err := p.Outline()
	if err != nil {
		return nil, warnings, err
	}
	return export.FromOutline(outline), warnings, nil
}

// FontInfos builds the outline and unifies every font it places: the
// font dictionary, its descriptor, and the embedded program stream as
// one record per font.
//
// Example:
//
//	infos, _, err := pdfprobe.ForDocument(doc).FontInfos()
//	for _, info := range infos {
//	    fmt.Println(info)
//	}
func (p *Probe) FontInfos() ([]*font.Info, []Warning, error) {
	outline, warnings, err := p.Outline()
	if err != nil {
		return nil, warnings, err
	}
	return font.Extract(outline), warnings, nil
}

// Must is a helper that wraps a call to a terminal operation and panics
// if the error is non-nil. It discards warnings and returns just the
// value. It is intended for use in scripts or tests where error handling
// would be cumbersome.
//
// Example:
//
//	outline := pdfprobe.Must(pdfprobe.ForDocument(doc).Outline())
func Must[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
