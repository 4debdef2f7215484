package latex

import (
	"fmt"
	"regexp"
	"strings"
)

// Cleaning turns marked-up source into display and render text: text
// commands keep their argument, references collapse to markers, leftover
// command names are dropped so their arguments survive as plain text.
// Inline math spans and escaped characters are protected with
// placeholders and restored untouched; the renderer splits $...$ into
// italic runs and unescapes reserved characters last.
var (
	textCmdRe    = regexp.MustCompile(`\\(?:textbf|textit|texttt|emph|underline)\{([^}]*)\}`)
	headingCmdRe = regexp.MustCompile(`\\(?:sub)*(?:section|chapter|paragraph)\*?\{([^}]*)\}`)
	beginEndRe   = regexp.MustCompile(`\\(?:begin|end)\{\w+\*?\}`)
	captionCmdRe = regexp.MustCompile(`\\caption\{([^}]*)\}`)
	labelCmdRe   = regexp.MustCompile(`\\label\{[^}]*\}`)
	refCmdRe     = regexp.MustCompile(`\\(?:page|eq)?ref\{[^}]*\}`)
	citeCmdRe    = regexp.MustCompile(`\\cite\{[^}]*\}`)
	anyCmdRe     = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	spaceRe      = regexp.MustCompile(`\s+`)
	inlineMathRe = regexp.MustCompile(`\$[^$]+\$`)
	cmdTokenRe   = regexp.MustCompile(`\\[a-zA-Z]+\*?(\[[^\]]*\])?(\{[^}]*\})?`)
)

// Placeholders for characters that must survive command and brace
// stripping.
const (
	escLBrace = "\x01"
	escRBrace = "\x02"
	escDollar = "\x03"
	escAmp    = "\x04"
)

// cleanText strips markup from text, keeping the visible content.
func cleanText(s string) string {
	text := strings.ReplaceAll(s, `\$`, escDollar)
	text, maths := protectMath(text)
	text = strings.ReplaceAll(text, `\{`, escLBrace)
	text = strings.ReplaceAll(text, `\}`, escRBrace)

	text = textCmdRe.ReplaceAllString(text, "$1")
	text = headingCmdRe.ReplaceAllString(text, "$1")
	text = beginEndRe.ReplaceAllString(text, "")
	text = captionCmdRe.ReplaceAllString(text, "$1")
	text = labelCmdRe.ReplaceAllString(text, "")
	text = refCmdRe.ReplaceAllString(text, "[ref]")
	text = citeCmdRe.ReplaceAllString(text, "[cite]")
	text = anyCmdRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")

	text = strings.ReplaceAll(text, escLBrace, `\{`)
	text = strings.ReplaceAll(text, escRBrace, `\}`)
	text = restoreMath(text, maths)
	text = strings.ReplaceAll(text, escDollar, `\$`)

	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// protectMath replaces $...$ spans with placeholders so cleaning rules
// cannot touch their interior.
func protectMath(s string) (string, []string) {
	var maths []string
	out := inlineMathRe.ReplaceAllStringFunc(s, func(m string) string {
		maths = append(maths, m)
		return fmt.Sprintf("\x00%d\x00", len(maths)-1)
	})
	return out, maths
}

// restoreMath substitutes protected math spans back in.
func restoreMath(s string, maths []string) string {
	for i, m := range maths {
		s = strings.Replace(s, fmt.Sprintf("\x00%d\x00", i), m, 1)
	}
	return s
}

// hasVisibleText reports whether a line still has content once command
// tokens and their immediate arguments are removed. Text commands keep
// their argument first, so a line holding only \textbf{...} counts as
// text while a lone \includegraphics{...} does not.
func hasVisibleText(line string) bool {
	text := textCmdRe.ReplaceAllString(line, "$1")
	text = cmdTokenRe.ReplaceAllString(text, "")
	text = strings.NewReplacer("{", "", "}", "", "$", "").Replace(text)
	return strings.TrimSpace(text) != ""
}

// bracedPrefix extracts a balanced brace group starting at s[0]. Escaped
// braces do not affect the balance.
func bracedPrefix(s string) (string, bool) {
	if s == "" || s[0] != '{' {
		return "", false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], true
			}
		}
	}
	return "", false
}

// braceArg returns the first balanced brace argument found in s.
func braceArg(s string) (string, bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			return bracedPrefix(s[i:])
		}
	}
	return "", false
}

// findCaption extracts the argument of the first \caption command,
// brace-balanced so commands nested inside the caption survive.
func findCaption(text string) (string, bool) {
	idx := strings.Index(text, `\caption`)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimLeft(text[idx+len(`\caption`):], " \t")
	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return "", false
		}
		rest = strings.TrimLeft(rest[end+1:], " \t")
	}
	return bracedPrefix(rest)
}

// matchCaptionLine reports whether a stripped line is a \caption command
// and returns its argument.
func matchCaptionLine(stripped string) (string, bool) {
	if !strings.HasPrefix(stripped, `\caption`) {
		return "", false
	}
	return findCaption(stripped)
}

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
