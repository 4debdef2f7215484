package ir

// FormulaBlock preserves a block formula: the raw source for re-extraction
// and a command-stripped preview. Formulas are rendered as annotated text,
// not typeset.
type FormulaBlock struct {
	Source  string `json:"source"`
	Cleaned string `json:"cleaned,omitempty"`
}

// NewFormula creates a formula block.
func NewFormula(source, cleaned string, span Span) Block {
	return Block{
		OriginalKind: KindFormula,
		Text:         cleaned,
		Span:         span,
		Formula: &FormulaBlock{
			Source:  source,
			Cleaned: cleaned,
		},
	}
}
