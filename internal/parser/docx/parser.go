// Package docx provides a parser for Word paragraph streams. The
// document carries no markup to parse; formatting attributes are read per
// paragraph and reverse-engineered into semantic kinds by the classifier.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docforge-io/docstyler/internal/classify"
	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/logging"
	"github.com/docforge-io/docstyler/internal/parser"
)

const (
	documentPath = "word/document.xml"
	mediaPrefix  = "word/media/"
)

// Parser parses docx documents.
type Parser struct {
	path    string
	reader  *zip.ReadCloser
	options parser.Options
	log     zerolog.Logger

	thresholds classify.Thresholds

	// Refine, when set, runs between grouping and block assembly and may
	// rewrite group kinds in place.
	Refine func(groups []classify.Group)

	paragraphs []classify.Paragraph
	groups     []classify.Group
}

// New creates a new docx parser for the given file path.
func New(path string, opts parser.Options) (*Parser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if isLegacyDoc(path) {
			return nil, fmt.Errorf("%w: legacy binary .doc, convert it to .docx or configure the remote extractor",
				parser.ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("failed to open docx file: %w", err)
	}

	return &Parser{
		path:       path,
		reader:     r,
		options:    opts,
		log:        logging.Component(opts.Log(), "docx"),
		thresholds: classify.DefaultThresholds(),
	}, nil
}

// SetThresholds overrides the classification cutoffs.
func (p *Parser) SetThresholds(th classify.Thresholds) {
	p.thresholds = th
}

// Parse implements the Parser interface: read the paragraph stream,
// group it by format signature, and assemble a document whose blocks
// carry group signatures and paragraph-index spans.
func (p *Parser) Parse() (*ir.Document, error) {
	doc := ir.NewDocument()
	doc.Source = ir.Source{Path: p.path, Format: parser.FormatDocx.String()}

	docFile := p.findFile(documentPath)
	if docFile == nil {
		return nil, fmt.Errorf("%w: no %s entry", parser.ErrUnsupportedFormat, documentPath)
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open document body: %w", err)
	}
	defer rc.Close()

	paras, err := readParagraphs(xml.NewDecoder(rc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document body: %w", err)
	}
	p.paragraphs = paras

	p.groups = classify.GroupParagraphs(paras, p.thresholds)
	if p.Refine != nil {
		p.Refine(p.groups)
	}
	p.log.Debug().Int("paragraphs", len(paras)).Int("groups", len(p.groups)).
		Msg("classified paragraph stream")

	classify.Assemble(doc, paras, p.groups)

	p.collectMedia(doc)

	return doc, nil
}

// Close releases resources.
func (p *Parser) Close() error {
	if p.reader != nil {
		return p.reader.Close()
	}
	return nil
}

// Paragraphs returns the paragraph stream read by the last Parse call.
func (p *Parser) Paragraphs() []classify.Paragraph {
	return p.paragraphs
}

// Groups returns the format groups computed by the last Parse call.
func (p *Parser) Groups() []classify.Group {
	return p.groups
}

func (p *Parser) findFile(name string) *zip.File {
	for _, f := range p.reader.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// collectMedia lists word/media entries as the image inventory and
// optionally extracts them. An unreadable entry degrades to an asset
// diagnostic plus a placeholder body block.
func (p *Parser) collectMedia(doc *ir.Document) {
	byName := make(map[string]*zip.File)
	var names []string
	for _, f := range p.reader.File {
		if strings.HasPrefix(f.Name, mediaPrefix) && !f.FileInfo().IsDir() {
			byName[f.Name] = f
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		f := byName[name]
		ref := ir.ImageRef{
			Name:   strings.TrimPrefix(name, "word/"),
			Format: strings.TrimPrefix(filepath.Ext(name), "."),
			Size:   int64(f.UncompressedSize64),
		}
		if p.options.ExtractImages {
			p.extractMedia(doc, f, &ref)
		}
		doc.AddImage(ref)
	}
}

func (p *Parser) extractMedia(doc *ir.Document, f *zip.File, ref *ir.ImageRef) {
	data, err := readZipFile(f)
	if err != nil {
		doc.AddDiagnostic(ir.DiagAssetUnavailable,
			fmt.Sprintf("media %s: %v", ref.Name, err), ir.Span{Paragraph: -1})
		doc.AddBlock(ir.NewText(ir.KindBody, "[图片] "+filepath.Base(ref.Name), ir.Span{Paragraph: -1}))
		p.log.Warn().Str("media", ref.Name).Err(err).Msg("media unavailable, emitting placeholder")
		return
	}

	if p.options.ImageDir == "" {
		return
	}
	if err := os.MkdirAll(p.options.ImageDir, 0755); err != nil {
		doc.AddDiagnostic(ir.DiagAssetUnavailable,
			fmt.Sprintf("image dir %s: %v", p.options.ImageDir, err), ir.Span{Paragraph: -1})
		return
	}
	out := filepath.Join(p.options.ImageDir, filepath.Base(f.Name))
	if err := os.WriteFile(out, data, 0644); err != nil {
		doc.AddDiagnostic(ir.DiagAssetUnavailable,
			fmt.Sprintf("media %s: %v", ref.Name, err), ir.Span{Paragraph: -1})
		return
	}
	ref.Extracted = out
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// isLegacyDoc probes a file that failed to open as a zip for the CFB
// container of a legacy binary .doc.
func isLegacyDoc(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	format, err := parser.DetectFormatFromReader(f)
	return err == nil && format == parser.FormatDoc
}
