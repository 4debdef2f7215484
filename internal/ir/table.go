package ir

// TableBlock carries an extracted table grid: rows of trimmed cell text,
// rule and line-drawing tokens already stripped.
type TableBlock struct {
	Rows      [][]string `json:"rows"`
	Caption   string     `json:"caption,omitempty"`
	HasHeader bool       `json:"has_header,omitempty"` // first row is header
}

// NRows returns the number of rows.
func (t *TableBlock) NRows() int {
	return len(t.Rows)
}

// NCols returns the widest row's cell count.
func (t *TableBlock) NCols() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// NewTable creates a table block. Text is set to the caption so previews
// and logs have something readable.
func NewTable(rows [][]string, caption string, span Span) Block {
	return Block{
		OriginalKind: KindTable,
		Text:         caption,
		Span:         span,
		Table: &TableBlock{
			Rows:      rows,
			Caption:   caption,
			HasHeader: len(rows) > 1,
		},
	}
}
