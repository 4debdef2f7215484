package ir

// Run is a styled text run within one rendered paragraph. The renderer
// splits inline math out of plain text into italic runs interleaved with
// normal runs in original order.
type Run struct {
	Text  string    `json:"text"`
	Style TextStyle `json:"style,omitempty"`
}

// TextStyle contains character-level styling applied on top of the
// paragraph's resolved style.
type TextStyle struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
	Math   bool `json:"math,omitempty"` // run came from an inline math span
}

// PlainRun wraps unstyled text.
func PlainRun(text string) Run {
	return Run{Text: text}
}

// MathRun wraps an inline math span: italic, flagged as math.
func MathRun(text string) Run {
	return Run{Text: text, Style: TextStyle{Italic: true, Math: true}}
}
