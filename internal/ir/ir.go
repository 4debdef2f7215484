// Package ir defines the intermediate representation shared by the
// structural parser, the format-signature classifier, and the renderer.
// A parsed document is an ordered sequence of typed blocks; overrides and
// style resolution operate on this representation only.
package ir

import "fmt"

// BlockKind is the semantic type of a content block.
type BlockKind string

const (
	KindHeading1 BlockKind = "heading1"
	KindHeading2 BlockKind = "heading2"
	KindHeading3 BlockKind = "heading3"
	KindHeading4 BlockKind = "heading4"
	KindBody     BlockKind = "body"
	KindCaption  BlockKind = "caption"
	KindCode     BlockKind = "code"
	KindTable    BlockKind = "table"
	KindFormula  BlockKind = "formula"
	KindQuote    BlockKind = "quote"
	KindListItem BlockKind = "list_item"
)

// Kinds returns all valid block kinds in a stable order.
func Kinds() []BlockKind {
	return []BlockKind{
		KindHeading1, KindHeading2, KindHeading3, KindHeading4,
		KindBody, KindCaption, KindCode, KindTable, KindFormula,
		KindQuote, KindListItem,
	}
}

// ParseKind validates a kind name. Unknown names are rejected so that
// override entries and CLI flags cannot introduce kinds the renderer
// does not know.
func ParseKind(s string) (BlockKind, error) {
	k := BlockKind(s)
	for _, valid := range Kinds() {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown block kind %q", s)
}

// HeadingKind returns the heading kind for a level in 1..4.
func HeadingKind(level int) (BlockKind, error) {
	switch level {
	case 1:
		return KindHeading1, nil
	case 2:
		return KindHeading2, nil
	case 3:
		return KindHeading3, nil
	case 4:
		return KindHeading4, nil
	}
	return "", fmt.Errorf("heading level %d out of range 1..4", level)
}

// HeadingLevel returns the level of a heading kind, or 0 for non-headings.
func (k BlockKind) HeadingLevel() int {
	switch k {
	case KindHeading1:
		return 1
	case KindHeading2:
		return 2
	case KindHeading3:
		return 3
	case KindHeading4:
		return 4
	}
	return 0
}

// IsHeading reports whether the kind is one of the four heading levels.
func (k BlockKind) IsHeading() bool {
	return k.HeadingLevel() > 0
}

// Source records where a document came from.
type Source struct {
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"`
}

// Document is the parsed intermediate representation: an ordered block
// sequence plus the diagnostics collected while producing it.
type Document struct {
	Version     string       `json:"version"`
	Source      Source       `json:"source"`
	Blocks      []Block      `json:"blocks"`
	Images      []ImageRef   `json:"images,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// NewDocument creates an empty document with the current IR version.
func NewDocument() *Document {
	return &Document{
		Version: "1.0",
		Blocks:  make([]Block, 0),
	}
}

// AddBlock appends a block, assigning the next dense index. Indices are
// unique and insertion-ordered within one document; this is the only
// ordering guarantee the pipeline relies on.
func (d *Document) AddBlock(b Block) *Block {
	b.Index = len(d.Blocks)
	if b.DisplayText == "" {
		b.DisplayText = Preview(b.Text)
	}
	d.Blocks = append(d.Blocks, b)
	return &d.Blocks[len(d.Blocks)-1]
}

// AddDiagnostic records a non-fatal degradation.
func (d *Document) AddDiagnostic(code, message string, span Span) {
	d.Diagnostics = append(d.Diagnostics, Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
	})
}

// BlocksOfKind returns the blocks whose original kind matches k.
func (d *Document) BlocksOfKind(k BlockKind) []*Block {
	var out []*Block
	for i := range d.Blocks {
		if d.Blocks[i].OriginalKind == k {
			out = append(out, &d.Blocks[i])
		}
	}
	return out
}
