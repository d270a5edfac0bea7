package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format int

const (
	// FormatJSON encodes the report as a single JSON document.
	FormatJSON Format = iota
	// FormatYAML encodes the report as a YAML document.
	FormatYAML
)

// String returns a human-readable representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format.
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// Config holds configuration options for writing reports.
type Config struct {
	// Format specifies the report encoding.
	Format Format

	// Compress gzips the encoded report.
	Compress bool

	// PrettyPrint enables indentation for JSON output.
	PrettyPrint bool

	// OutputDir is the directory WriteFile places reports in.
	OutputDir string
}

// DefaultConfig returns sensible defaults: pretty-printed JSON,
// uncompressed, written to the current directory.
func DefaultConfig() Config {
	return Config{
		Format:      FormatJSON,
		PrettyPrint: true,
		OutputDir:   ".",
	}
}

// Writer encodes reports according to its configuration.
type Writer struct {
	config Config
}

// NewWriter creates a writer with default configuration.
func NewWriter() *Writer {
	return &Writer{config: DefaultConfig()}
}

// NewWriterWithConfig creates a writer with custom configuration.
func NewWriterWithConfig(config Config) *Writer {
	return &Writer{config: config}
}

// Write encodes the report to out.
func (w *Writer) Write(r *Report, out io.Writer) error {
	if r == nil {
		return fmt.Errorf("nil report")
	}
	if !w.config.Compress {
		return w.encode(r, out)
	}
	gz := gzip.NewWriter(out)
	if err := w.encode(r, gz); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// WriteFile encodes the report to a timestamped file in the configured
// output directory, creating the directory if needed, and returns the
// path written.
func (w *Writer) WriteFile(r *Report) (string, error) {
	if r == nil {
		return "", fmt.Errorf("nil report")
	}
	dir := w.config.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, w.filename(r))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	if err := w.Write(r, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// filename builds a name like pdfprobe_report_20260825T193012_1a2b3c4d.json.gz
// from the report's timestamp and run id.
func (w *Writer) filename(r *Report) string {
	stamp := r.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	run := r.RunID
	if len(run) > 8 {
		run = run[:8]
	}
	name := fmt.Sprintf("pdfprobe_report_%s_%s%s",
		stamp.Format("20060102T150405"), run, w.config.Format.FileExtension())
	if w.config.Compress {
		name += ".gz"
	}
	return name
}

func (w *Writer) encode(r *Report, out io.Writer) error {
	switch w.config.Format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		if w.config.PrettyPrint {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format: %v", w.config.Format)
	}
}
