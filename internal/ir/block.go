package ir

// previewRunes is the display-text truncation length.
const previewRunes = 100

// Span points back into the source with enough precision to re-extract
// the block's full content: a line range for markup input, a paragraph
// index for paragraph-stream input.
type Span struct {
	StartLine int `json:"start_line,omitempty"` // 1-based, markup input
	EndLine   int `json:"end_line,omitempty"`   // 1-based, inclusive
	Paragraph int `json:"paragraph"`            // 0-based stream index, -1 for markup input
}

// LineSpan builds a markup-source span.
func LineSpan(start, end int) Span {
	return Span{StartLine: start, EndLine: end, Paragraph: -1}
}

// ParagraphSpan builds a paragraph-stream span.
func ParagraphSpan(index int) Span {
	return Span{Paragraph: index}
}

// Block is the atomic unit flowing through the pipeline. OriginalKind is
// fixed at creation; the kind used for rendering is always recomputed
// through AssignedKind so override changes and reverts take effect
// without any cached state.
type Block struct {
	Index        int       `json:"index"`
	OriginalKind BlockKind `json:"original_kind"`
	Text         string    `json:"text"`
	DisplayText  string    `json:"display_text,omitempty"`
	Span         Span      `json:"span"`
	Group        string    `json:"group,omitempty"` // format signature, stream input only

	Table   *TableBlock   `json:"table,omitempty"`
	Code    *CodeBlock    `json:"code,omitempty"`
	Formula *FormulaBlock `json:"formula,omitempty"`
}

// AssignedKind resolves the kind used for rendering: the override entry
// for this block (group first, then index) or OriginalKind.
func (b *Block) AssignedKind(ov *OverrideMap) BlockKind {
	if ov == nil {
		return b.OriginalKind
	}
	return ov.Resolve(b)
}

// NewText creates a plain-text block (headings, body, caption, quote,
// list items).
func NewText(kind BlockKind, text string, span Span) Block {
	return Block{
		OriginalKind: kind,
		Text:         text,
		Span:         span,
	}
}

// Preview truncates text to the display length, counting runes so
// multibyte scripts are not cut mid-character.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= previewRunes {
		return text
	}
	return string(r[:previewRunes])
}
