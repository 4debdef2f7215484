// Package classify groups paragraph streams into format equivalence
// classes and guesses a semantic kind for each class. The input carries
// resolved formatting attributes only; classification never goes back to
// the source document.
package classify

import (
	"strconv"
	"strings"

	"github.com/docforge-io/docstyler/internal/ir"
)

// Paragraph is one entry of a paragraph stream.
type Paragraph struct {
	Index           int     `json:"index"` // position in the full stream
	Text            string  `json:"text"`
	StyleName       string  `json:"style_name,omitempty"`
	FontName        string  `json:"font_name,omitempty"`
	FontSize        float64 `json:"font_size,omitempty"` // points, 0 when unresolved
	Bold            bool    `json:"bold,omitempty"`
	Italic          bool    `json:"italic,omitempty"`
	Alignment       string  `json:"alignment,omitempty"`         // left, center, right, justify
	FirstLineIndent float64 `json:"first_line_indent,omitempty"` // points
	LineSpacing     float64 `json:"line_spacing,omitempty"`
	HasDrawing      bool    `json:"has_drawing,omitempty"` // inline image or shape present
}

// Signature derives the format key for a paragraph: font family, size
// rounded to one decimal, bold and italic flags, alignment. A pure
// function of those five attributes; equal tuples always produce equal
// keys.
func Signature(p Paragraph) string {
	font := p.FontName
	if font == "" {
		font = "default"
	}
	size := "default"
	if p.FontSize > 0 {
		size = strconv.FormatFloat(p.FontSize, 'f', 1, 64)
	}
	bold := ""
	if p.Bold {
		bold = "B"
	}
	italic := ""
	if p.Italic {
		italic = "I"
	}
	return strings.Join([]string{font, size, bold, italic, p.Alignment}, "|")
}

// Thresholds are the size cutoffs behind kind guessing, in points. They
// encode common print conventions, not structural facts; a document
// violating them classifies wrong and needs overrides.
type Thresholds struct {
	Heading1MinSize        float64 `yaml:"heading1_min_size" json:"heading1_min_size"`
	Heading2MinSize        float64 `yaml:"heading2_min_size" json:"heading2_min_size"`
	Heading3MinSize        float64 `yaml:"heading3_min_size" json:"heading3_min_size"`
	CaptionMaxSize         float64 `yaml:"caption_max_size" json:"caption_max_size"`
	CenteredCaptionMaxSize float64 `yaml:"centered_caption_max_size" json:"centered_caption_max_size"`
}

// DefaultThresholds returns the built-in cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Heading1MinSize:        15,
		Heading2MinSize:        14,
		Heading3MinSize:        12,
		CaptionMaxSize:         9,
		CenteredCaptionMaxSize: 10,
	}
}

// Group is one format equivalence class: every non-empty paragraph whose
// signature matches, in stream order. Formatting attributes are taken
// from the first member.
type Group struct {
	Signature   string       `json:"signature"`
	Members     []int        `json:"members"` // paragraph indices
	GuessedKind ir.BlockKind `json:"guessed_kind"`
	Font        string       `json:"font,omitempty"`
	Size        float64      `json:"size,omitempty"`
	Bold        bool         `json:"bold,omitempty"`
	Italic      bool         `json:"italic,omitempty"`
	Alignment   string       `json:"alignment,omitempty"`
	Sample      string       `json:"sample,omitempty"`    // first member, truncated
	Ambiguous   bool         `json:"ambiguous,omitempty"` // low-confidence guess
}

// GroupParagraphs groups paragraphs by signature and guesses a kind per
// group. Groups appear in first-member order. Empty-text paragraphs are
// excluded before grouping and never produce a block.
func GroupParagraphs(paras []Paragraph, th Thresholds) []Group {
	var groups []Group
	var first []Paragraph
	bySig := make(map[string]int)
	total := 0

	for _, p := range paras {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		total++
		sig := Signature(p)
		idx, ok := bySig[sig]
		if !ok {
			idx = len(groups)
			bySig[sig] = idx
			groups = append(groups, Group{
				Signature: sig,
				Font:      p.FontName,
				Size:      p.FontSize,
				Bold:      p.Bold,
				Italic:    p.Italic,
				Alignment: p.Alignment,
				Sample:    sampleText(p.Text),
			})
			first = append(first, p)
		}
		groups[idx].Members = append(groups[idx].Members, p.Index)
	}

	for i := range groups {
		kind, hinted := GuessKind(first[i], th)
		groups[i].GuessedKind = kind
		groups[i].Ambiguous = lowConfidence(&groups[i], hinted, total, th)
	}
	return groups
}

// GuessKind maps formatting attributes to a semantic kind. First match
// wins; the style-name hint outranks every size rule. The second return
// reports whether the hint decided.
func GuessKind(p Paragraph, th Thresholds) (ir.BlockKind, bool) {
	if level := styleHeadingLevel(p.StyleName); level > 0 {
		kind, _ := ir.HeadingKind(level)
		return kind, true
	}

	if p.FontSize > 0 {
		switch {
		case p.FontSize >= th.Heading1MinSize && p.Bold:
			return ir.KindHeading1, false
		case p.FontSize >= th.Heading2MinSize && p.Bold:
			return ir.KindHeading2, false
		case p.FontSize >= th.Heading3MinSize && p.Bold:
			return ir.KindHeading3, false
		case p.FontSize <= th.CaptionMaxSize:
			return ir.KindCaption, false
		}
	}

	// centered small text is usually a figure or table caption
	if p.Alignment == "center" && p.FontSize > 0 && p.FontSize <= th.CenteredCaptionMaxSize {
		return ir.KindCaption, false
	}

	return ir.KindBody, false
}

// styleHeadingLevel reads a heading level out of a style name. The
// English built-in names ("Heading 2", "Title") and the Chinese Word UI
// names ("标题 2") both count. Unparseable levels degrade to 1; levels
// past the kind vocabulary clamp to 4.
func styleHeadingLevel(name string) int {
	var rest string
	switch {
	case name == "Title":
		return 1
	case strings.HasPrefix(name, "Heading"):
		rest = strings.TrimSpace(strings.TrimPrefix(name, "Heading"))
	case strings.Contains(name, "标题"):
		rest = strings.TrimSpace(strings.ReplaceAll(name, "标题", ""))
	default:
		return 0
	}
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 {
		return 1
	}
	if level > 4 {
		return 4
	}
	return level
}

// lowConfidence flags guesses worth a second look: a heading inferred
// purely from size and weight that covers most of the document, or a
// caption reached only through the centered-small rule. Hinted guesses
// are always trusted.
func lowConfidence(g *Group, hinted bool, total int, th Thresholds) bool {
	if hinted {
		return false
	}
	if g.GuessedKind.IsHeading() && len(g.Members)*2 > total {
		return true
	}
	if g.GuessedKind == ir.KindCaption && g.Size > th.CaptionMaxSize {
		return true
	}
	return false
}

const sampleRunes = 50

func sampleText(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= sampleRunes {
		return s
	}
	return string(r[:sampleRunes])
}
