package pdfprobe

import (
	"go.uber.org/zap"

	"github.com/tsawler/pdfprobe/tree"
)

// probeOptions holds configuration for an analysis run.
type probeOptions struct {
	// Diagnostics destination; nil discards them.
	logger *zap.Logger

	// Node budget; zero means unlimited.
	maxNodes int
}

// defaultOptions returns the default analysis options.
func defaultOptions() probeOptions {
	return probeOptions{
		logger:   nil, // nil means discard diagnostics
		maxNodes: 0,   // 0 means no limit
	}
}

// clone creates a copy of probeOptions.
func (o probeOptions) clone() probeOptions {
	return probeOptions{
		logger:   o.logger,
		maxNodes: o.maxNodes,
	}
}

// treeOptions translates the options into the tree package's form.
func (o probeOptions) treeOptions() []tree.Option {
	var opts []tree.Option
	if o.logger != nil {
		opts = append(opts, tree.WithLogger(o.logger))
	}
	if o.maxNodes > 0 {
		opts = append(opts, tree.WithMaxNodes(o.maxNodes))
	}
	return opts
}

// DefaultLogger builds a development-configured logger writing to
// standard error, for hosts that want analysis diagnostics without
// assembling their own zap configuration.
//
// Example:
//
//	outline, _, err := pdfprobe.ForDocument(doc).
//	    WithLogger(pdfprobe.DefaultLogger()).
//	    Outline()
func DefaultLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
