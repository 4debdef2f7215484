// Package parser provides the parser interface and input-shape detection
// for the conversion pipeline.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/rs/zerolog"

	"github.com/docforge-io/docstyler/internal/ir"
)

// ErrUnsupportedFormat is returned when neither the markup nor the
// paragraph-stream shape is recognized, or the shape is recognized but
// cannot be read locally (legacy binary .doc).
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ErrSourceUnavailable is returned when the input file cannot be read at
// all: missing, unreadable, or gone mid-conversion.
var ErrSourceUnavailable = errors.New("source unavailable")

// Parser is the interface for document parsers.
type Parser interface {
	// Parse reads the document and returns an IR representation.
	Parse() (*ir.Document, error)

	// Close releases any resources held by the parser.
	Close() error
}

// Format represents an input document format.
type Format int

const (
	FormatUnknown Format = iota
	FormatLaTeX
	FormatDocx
	FormatDoc // legacy Word binary (CFB container), not parsed locally
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatLaTeX:
		return "latex"
	case FormatDocx:
		return "docx"
	case FormatDoc:
		return "doc"
	default:
		return "unknown"
	}
}

// ParseFormat maps a --format flag value to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "auto", "":
		return FormatUnknown, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	case "docx":
		return FormatDocx, nil
	case "doc":
		return FormatDoc, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// DetectFormat detects the document format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".tex", ".latex", ".ltx":
		return FormatLaTeX
	case ".docx":
		return FormatDocx
	case ".doc":
		return FormatDoc
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by content: zip containers
// are taken as docx, CFB containers are probed for a Word stream, and
// text starting with markup commands is taken as LaTeX source.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 512)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}
	buf = buf[:n]

	// ZIP local file header (docx and other OOXML packages)
	if buf[0] == 'P' && buf[1] == 'K' && buf[2] == 0x03 && buf[3] == 0x04 {
		return FormatDocx, nil
	}

	// OLE/CFB compound file: probe the directory for a Word stream.
	if buf[0] == 0xD0 && buf[1] == 0xCF && buf[2] == 0x11 && buf[3] == 0xE0 {
		if isLegacyWord(r) {
			return FormatDoc, nil
		}
		return FormatUnknown, nil
	}

	head := string(buf)
	if strings.Contains(head, `\documentclass`) || strings.Contains(head, `\begin{document}`) {
		return FormatLaTeX, nil
	}

	return FormatUnknown, nil
}

// isLegacyWord opens the CFB directory and looks for the WordDocument
// stream that every legacy .doc carries.
func isLegacyWord(r io.ReaderAt) bool {
	reader, err := mscfb.New(r)
	if err != nil {
		return false
	}
	for entry, err := reader.Next(); err == nil; entry, err = reader.Next() {
		if entry.Name == "WordDocument" {
			return true
		}
	}
	return false
}

// ProgressFunc receives coarse conversion checkpoints. Advisory only:
// percentages are monotonically non-decreasing within one call, nothing
// else is guaranteed.
type ProgressFunc func(percent int, message string)

// Options contains parser configuration options.
type Options struct {
	ExtractImages      bool            // whether to extract embedded images
	ImageDir           string          // directory to save extracted images
	StrictEnvironments bool            // treat unterminated environments as errors instead of diagnostics
	Progress           ProgressFunc    // optional progress callback
	Logger             *zerolog.Logger // optional; nil means no logging
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		ExtractImages: false,
		ImageDir:      "",
	}
}

// Report invokes the progress callback if one is set.
func (o Options) Report(percent int, message string) {
	if o.Progress != nil {
		o.Progress(percent, message)
	}
}

// Log returns the configured logger or a no-op logger.
func (o Options) Log() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}
