package ir

// CodeBlock carries verbatim source lines, byte-for-byte as they appeared.
type CodeBlock struct {
	Lines   []string `json:"lines"`
	Caption string   `json:"caption,omitempty"`
}

// NewCode creates a code block. Text is the first line for preview use.
func NewCode(lines []string, caption string, span Span) Block {
	text := caption
	if text == "" && len(lines) > 0 {
		text = lines[0]
	}
	return Block{
		OriginalKind: KindCode,
		Text:         text,
		Span:         span,
		Code: &CodeBlock{
			Lines:   lines,
			Caption: caption,
		},
	}
}
