// Package export flattens a finished outline into a serializable
// report and writes it out as JSON or YAML, optionally compressed.
package export

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tsawler/pdfprobe/tree"
)

// Report is a flat, self-contained account of one analysis run. Tree
// shape is recoverable from the parent ids; everything else a consumer
// needs travels with the rows so no live outline is required to read
// it.
type Report struct {
	RunID       string        `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Document    DocumentStats `json:"document" yaml:"document"`
	Nodes       []NodeRow     `json:"nodes" yaml:"nodes"`
	Symlinks    []SymlinkRow  `json:"symlinks,omitempty" yaml:"symlinks,omitempty"`
	Warnings    []WarningRow  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// DocumentStats aggregates the document-level tallies.
type DocumentStats struct {
	DeclaredSize  int            `json:"declared_size,omitempty" yaml:"declared_size,omitempty"`
	MaxGeneration int            `json:"max_generation,omitempty" yaml:"max_generation,omitempty"`
	NodeCount     int            `json:"node_count" yaml:"node_count"`
	StreamCount   int            `json:"stream_count" yaml:"stream_count"`
	StreamBytes   int64          `json:"stream_bytes" yaml:"stream_bytes"`
	SymlinkCount  int            `json:"symlink_count" yaml:"symlink_count"`
	WarningCount  int            `json:"warning_count" yaml:"warning_count"`
	NodesByKind   map[string]int `json:"nodes_by_kind" yaml:"nodes_by_kind"`
	NodesByLabel  map[string]int `json:"nodes_by_label" yaml:"nodes_by_label"`
	KeyFrequency  map[string]int `json:"key_frequency" yaml:"key_frequency"`
}

// NodeRow describes one placed record. StreamLength is -1 when the
// record carries a stream whose payload could not be decoded.
type NodeRow struct {
	ID           int    `json:"id" yaml:"id"`
	Label        string `json:"label" yaml:"label"`
	Kind         string `json:"kind" yaml:"kind"`
	Subkind      string `json:"subkind,omitempty" yaml:"subkind,omitempty"`
	Address      string `json:"address" yaml:"address"`
	ParentID     int    `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	ChildCount   int    `json:"child_count,omitempty" yaml:"child_count,omitempty"`
	StreamLength int    `json:"stream_length,omitempty" yaml:"stream_length,omitempty"`
	Degraded     bool   `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// SymlinkRow describes one reference that did not become a tree edge.
type SymlinkRow struct {
	FromID  int    `json:"from_id" yaml:"from_id"`
	ToID    int    `json:"to_id" yaml:"to_id"`
	Key     string `json:"key" yaml:"key"`
	Address string `json:"address" yaml:"address"`
}

// WarningRow describes one non-fatal finding. A zero NodeID means the
// warning concerns the document as a whole.
type WarningRow struct {
	Kind    string `json:"kind" yaml:"kind"`
	NodeID  int    `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// FromOutline flattens a finished outline into a Report. Node rows are
// sorted by record number; symlink and warning rows keep the order the
// outline produced them in.
func FromOutline(o *tree.Outline) *Report {
	if o == nil {
		return nil
	}
	summary := o.Summary()
	declared, _ := o.Source().DeclaredSize()
	r := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Document: DocumentStats{
			DeclaredSize:  declared,
			MaxGeneration: o.Source().MaxGeneration(),
			NodeCount:     summary.NodeCount,
			StreamCount:   summary.StreamCount,
			StreamBytes:   summary.StreamBytes,
			SymlinkCount:  summary.SymlinkCount,
			WarningCount:  summary.WarningCount,
			NodesByKind:   summary.NodesByKind,
			NodesByLabel:  summary.NodesByLabel,
			KeyFrequency:  summary.KeyFrequency,
		},
	}

	nodes := o.LevelOrder()
	r.Nodes = make([]NodeRow, 0, len(nodes))
	for _, n := range nodes {
		row := NodeRow{
			ID:           n.ID(),
			Label:        n.Label(),
			Kind:         n.Kind(),
			Subkind:      n.Subkind(),
			Address:      n.Address(),
			ChildCount:   len(n.Children()),
			StreamLength: n.StreamLength(),
			Degraded:     n.Degraded(),
		}
		if p := n.Parent(); p != nil {
			row.ParentID = p.ID()
		}
		r.Nodes = append(r.Nodes, row)
	}
	sort.Slice(r.Nodes, func(i, j int) bool { return r.Nodes[i].ID < r.Nodes[j].ID })

	for _, e := range o.Symlinks() {
		r.Symlinks = append(r.Symlinks, SymlinkRow{
			FromID:  e.From.ID(),
			ToID:    e.To.ID(),
			Key:     e.Key,
			Address: e.Address,
		})
	}
	for _, w := range o.Warnings() {
		r.Warnings = append(r.Warnings, WarningRow{
			Kind:    w.Kind.String(),
			NodeID:  w.NodeID,
			Message: w.Message,
		})
	}
	return r
}
