package render

import (
	"strings"

	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/style"
)

// DocumentWriter consumes the ordered render-instruction sequence. The
// renderer is format-agnostic on output; writers turn instructions into a
// persisted document. A writer error aborts the conversion immediately
// and partial output is not guaranteed consistent.
type DocumentWriter interface {
	Paragraph(runs []ir.Run, st style.Resolved) error
	Table(rows [][]string, hasHeader bool, st style.Resolved) error
	Formula(text string, st style.Resolved) error
}

// Instruction is one recorded render instruction.
type Instruction struct {
	Op        string         `json:"op"` // paragraph, table, formula
	Runs      []ir.Run       `json:"runs,omitempty"`
	Rows      [][]string     `json:"rows,omitempty"`
	HasHeader bool           `json:"has_header,omitempty"`
	Text      string         `json:"text,omitempty"`
	Style     style.Resolved `json:"style"`
}

// PlainText joins a paragraph instruction's run text.
func (i Instruction) PlainText() string {
	var sb strings.Builder
	for _, r := range i.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Recorder accumulates instructions instead of writing a document. It
// backs tests and the JSON output mode.
type Recorder struct {
	Instructions []Instruction
}

// Paragraph records a paragraph instruction.
func (r *Recorder) Paragraph(runs []ir.Run, st style.Resolved) error {
	r.Instructions = append(r.Instructions, Instruction{Op: "paragraph", Runs: runs, Style: st})
	return nil
}

// Table records a grid instruction.
func (r *Recorder) Table(rows [][]string, hasHeader bool, st style.Resolved) error {
	r.Instructions = append(r.Instructions, Instruction{Op: "table", Rows: rows, HasHeader: hasHeader, Style: st})
	return nil
}

// Formula records a math-object instruction.
func (r *Recorder) Formula(text string, st style.Resolved) error {
	r.Instructions = append(r.Instructions, Instruction{Op: "formula", Text: text, Style: st})
	return nil
}

// MarkdownWriter renders instructions as Markdown: headings by level,
// fenced code, pipe tables, formulas as their own math paragraph.
// Consecutive code-styled paragraphs share one fence.
type MarkdownWriter struct {
	sb     strings.Builder
	inCode bool
}

// Paragraph writes one paragraph. Empty non-code paragraphs are dropped.
func (w *MarkdownWriter) Paragraph(runs []ir.Run, st style.Resolved) error {
	if st.Kind == string(ir.KindCode) {
		if !w.inCode {
			w.sb.WriteString("```\n")
			w.inCode = true
		}
		w.sb.WriteString(Instruction{Runs: runs}.PlainText())
		w.sb.WriteString("\n")
		return nil
	}
	w.closeCode()

	text := strings.TrimSpace(runsMarkdown(runs))
	if text == "" {
		return nil
	}

	if level := ir.BlockKind(st.Kind).HeadingLevel(); level > 0 {
		w.sb.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
		return nil
	}
	if st.Kind == string(ir.KindQuote) {
		w.sb.WriteString("> " + text + "\n\n")
		return nil
	}
	w.sb.WriteString(text + "\n\n")
	return nil
}

// Table writes a pipe table with a separator after the first row.
func (w *MarkdownWriter) Table(rows [][]string, hasHeader bool, st style.Resolved) error {
	w.closeCode()
	if len(rows) == 0 {
		return nil
	}

	for i, row := range rows {
		w.sb.WriteString("|")
		for _, cell := range row {
			w.sb.WriteString(" " + strings.ReplaceAll(cell, "\n", " ") + " |")
		}
		w.sb.WriteString("\n")

		if i == 0 {
			w.sb.WriteString("|")
			for range row {
				w.sb.WriteString(" --- |")
			}
			w.sb.WriteString("\n")
		}
	}
	w.sb.WriteString("\n")
	return nil
}

// Formula writes the formula text as its own math paragraph.
func (w *MarkdownWriter) Formula(text string, st style.Resolved) error {
	w.closeCode()
	if text == "" {
		return nil
	}
	w.sb.WriteString("$" + text + "$\n\n")
	return nil
}

// String closes any open code fence and returns the document.
func (w *MarkdownWriter) String() string {
	w.closeCode()
	return w.sb.String()
}

func (w *MarkdownWriter) closeCode() {
	if w.inCode {
		w.sb.WriteString("```\n\n")
		w.inCode = false
	}
}

// runsMarkdown renders runs with inline markers: math spans back to
// $...$, italic and bold to emphasis.
func runsMarkdown(runs []ir.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		switch {
		case r.Style.Math:
			sb.WriteString("$" + r.Text + "$")
		case r.Style.Bold:
			sb.WriteString("**" + r.Text + "**")
		case r.Style.Italic:
			sb.WriteString("*" + r.Text + "*")
		default:
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}
