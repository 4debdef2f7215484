package classify

import (
	"fmt"

	"github.com/docforge-io/docstyler/internal/ir"
)

// Assemble appends one block per grouped paragraph to doc, carrying the
// group's guessed kind and format signature, plus an ambiguity diagnostic
// for each low-confidence group. Paragraphs excluded from grouping (empty
// text) produce no block, so paragraph indices in spans stay positional.
func Assemble(doc *ir.Document, paras []Paragraph, groups []Group) {
	byIndex := make(map[int]*Group)
	for gi := range groups {
		for _, m := range groups[gi].Members {
			byIndex[m] = &groups[gi]
		}
	}

	for _, para := range paras {
		g, ok := byIndex[para.Index]
		if !ok {
			continue
		}
		b := ir.NewText(g.GuessedKind, para.Text, ir.ParagraphSpan(para.Index))
		b.Group = g.Signature
		doc.AddBlock(b)
	}

	for _, g := range groups {
		if !g.Ambiguous {
			continue
		}
		doc.AddDiagnostic(ir.DiagAmbiguousClassification,
			fmt.Sprintf("group %s: %s guessed from formatting alone", g.Signature, g.GuessedKind),
			ir.ParagraphSpan(g.Members[0]))
	}
}
