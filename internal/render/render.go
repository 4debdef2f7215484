// Package render turns a typed block sequence into ordered render
// instructions for a document writer. Each block's assigned kind is
// resolved through the override map, its style through the catalog, and
// headings receive generated outline numbering. Style lookup never
// fails; a missing entry degrades through the body entry to built-in
// defaults.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/logging"
	"github.com/docforge-io/docstyler/internal/style"
)

// Options control one Render call.
type Options struct {
	// Only restricts restyling to blocks whose index or group signature
	// is listed. Empty selects every block. Unselected blocks keep their
	// structural shape but render with the body style and no generated
	// numbering.
	Only []string

	// Progress, when set, is invoked after each block.
	Progress func(done, total int)

	Logger *zerolog.Logger
}

// RenderContext is the mutable state of one conversion call: heading
// numbering plus the running caption counters. Created fresh per Render
// call and never shared across calls.
type RenderContext struct {
	Numberer     HeadingNumberer
	TableCounter int
	CodeCounter  int
}

// NextTableLabel returns the running label for a table caption.
func (c *RenderContext) NextTableLabel() string {
	c.TableCounter++
	return fmt.Sprintf("表%d", c.TableCounter)
}

// NextCodeLabel returns the running label for a code caption.
func (c *RenderContext) NextCodeLabel() string {
	c.CodeCounter++
	return fmt.Sprintf("代码%d", c.CodeCounter)
}

// Renderer maps blocks to render instructions. It holds no mutable
// state across calls; one Renderer may serve concurrent conversions with
// distinct writers.
type Renderer struct {
	catalog *style.Catalog
}

// New creates a renderer over the given catalog. A nil catalog resolves
// every kind to the built-in defaults.
func New(catalog *style.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

// Render walks the document in block order and emits one instruction
// sequence to w. A writer error aborts immediately and is returned as
// the conversion's single failure.
func (r *Renderer) Render(doc *ir.Document, overrides *ir.OverrideMap, w DocumentWriter, opts Options) error {
	ctx := &RenderContext{}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = logging.Component(*opts.Logger, "render")
	}
	selected := newSelection(opts.Only)

	for i := range doc.Blocks {
		b := &doc.Blocks[i]

		var err error
		if selected.matches(b) {
			err = r.renderBlock(ctx, b, b.AssignedKind(overrides), w, log)
		} else {
			err = r.renderUnstyled(b, w)
		}
		if err != nil {
			return fmt.Errorf("failed to render block %d: %w", b.Index, err)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(doc.Blocks))
		}
	}

	return nil
}

func (r *Renderer) renderBlock(ctx *RenderContext, b *ir.Block, kind ir.BlockKind, w DocumentWriter, log zerolog.Logger) error {
	switch kind {
	case ir.KindHeading1, ir.KindHeading2, ir.KindHeading3, ir.KindHeading4:
		return r.renderHeading(ctx, b, kind, w)
	case ir.KindBody, ir.KindQuote, ir.KindCaption, ir.KindListItem:
		return r.renderParagraph(b, kind, w)
	case ir.KindCode:
		return r.renderCode(ctx, b, w)
	case ir.KindTable:
		return r.renderTable(ctx, b, w, log)
	case ir.KindFormula:
		return r.renderFormula(b, w)
	}
	log.Warn().Int("block", b.Index).Str("kind", string(kind)).Msg("unknown kind, rendering as body")
	return r.renderParagraph(b, ir.KindBody, w)
}

func (r *Renderer) renderHeading(ctx *RenderContext, b *ir.Block, kind ir.BlockKind, w DocumentWriter) error {
	st := r.catalog.Resolve(string(kind))
	prefix := ctx.Numberer.Next(kind.HeadingLevel())
	return w.Paragraph(SplitRuns(prefix+b.Text), st)
}

// renderParagraph handles the plain-text kinds. The first-line indent in
// character units survives only for body; other kinds drop it even when
// their style resolves through the body entry.
func (r *Renderer) renderParagraph(b *ir.Block, kind ir.BlockKind, w DocumentWriter) error {
	st := r.catalog.Resolve(string(kind))
	if kind != ir.KindBody {
		st.FirstLineIndent = 0
	}
	return w.Paragraph(SplitRuns(b.Text), st)
}

// renderCode emits one instruction per stored line, exact whitespace, no
// indent, then the attached caption with a running code label.
func (r *Renderer) renderCode(ctx *RenderContext, b *ir.Block, w DocumentWriter) error {
	st := r.catalog.Resolve(string(ir.KindCode))
	st.FirstLineIndent = 0

	lines := strings.Split(b.Text, "\n")
	caption := ""
	if b.Code != nil {
		lines = b.Code.Lines
		caption = b.Code.Caption
	}

	for _, line := range lines {
		if err := w.Paragraph([]ir.Run{ir.PlainRun(line)}, st); err != nil {
			return err
		}
	}

	if caption != "" {
		return r.renderLabeledCaption(ctx.NextCodeLabel(), caption, w)
	}
	return nil
}

func (r *Renderer) renderTable(ctx *RenderContext, b *ir.Block, w DocumentWriter, log zerolog.Logger) error {
	st := r.catalog.Resolve(string(ir.KindTable))
	if b.Table == nil {
		log.Warn().Int("block", b.Index).Msg("table kind without grid, rendering text")
		st.FirstLineIndent = 0
		return w.Paragraph(SplitRuns(b.Text), st)
	}

	if err := w.Table(unescapeRows(b.Table.Rows), b.Table.HasHeader, st); err != nil {
		return err
	}

	if b.Table.Caption != "" {
		return r.renderLabeledCaption(ctx.NextTableLabel(), b.Table.Caption, w)
	}
	return nil
}

func (r *Renderer) renderFormula(b *ir.Block, w DocumentWriter) error {
	st := r.catalog.Resolve(string(ir.KindFormula))
	source := b.Text
	if b.Formula != nil {
		source = b.Formula.Source
	}
	return w.Formula(CleanFormula(source), st)
}

func (r *Renderer) renderLabeledCaption(label, caption string, w DocumentWriter) error {
	st := r.catalog.Resolve(string(ir.KindCaption))
	st.FirstLineIndent = 0
	return w.Paragraph(SplitRuns(label+"  "+caption), st)
}

// renderUnstyled emits a block outside the restyle selection: structural
// shape preserved, body style, no numbering, no caption labels.
func (r *Renderer) renderUnstyled(b *ir.Block, w DocumentWriter) error {
	st := r.catalog.Resolve(string(ir.KindBody))

	switch {
	case b.Table != nil:
		if err := w.Table(unescapeRows(b.Table.Rows), b.Table.HasHeader, st); err != nil {
			return err
		}
		if b.Table.Caption != "" {
			return w.Paragraph(SplitRuns(b.Table.Caption), st)
		}
		return nil
	case b.Code != nil:
		for _, line := range b.Code.Lines {
			if err := w.Paragraph([]ir.Run{ir.PlainRun(line)}, st); err != nil {
				return err
			}
		}
		if b.Code.Caption != "" {
			return w.Paragraph(SplitRuns(b.Code.Caption), st)
		}
		return nil
	case b.Formula != nil:
		return w.Formula(CleanFormula(b.Formula.Source), st)
	}
	return w.Paragraph(SplitRuns(b.Text), st)
}

func unescapeRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = Unescape(cell)
		}
		out[i] = cells
	}
	return out
}

// selection is the set of --only selectors: block indices or group
// signatures.
type selection map[string]struct{}

func newSelection(only []string) selection {
	if len(only) == 0 {
		return nil
	}
	s := make(selection, len(only))
	for _, k := range only {
		s[k] = struct{}{}
	}
	return s
}

func (s selection) matches(b *ir.Block) bool {
	if s == nil {
		return true
	}
	if b.Group != "" {
		if _, ok := s[b.Group]; ok {
			return true
		}
	}
	_, ok := s[strconv.Itoa(b.Index)]
	return ok
}
