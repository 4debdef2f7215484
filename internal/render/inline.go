package render

import (
	"regexp"
	"strings"

	"github.com/docforge-io/docstyler/internal/ir"
)

// latexEscapes maps escaped reserved characters to their literals.
var latexEscapes = strings.NewReplacer(
	`\_`, "_",
	`\%`, "%",
	`\&`, "&",
	`\#`, "#",
	`\~`, "~",
	`\^`, "^",
	`\{`, "{",
	`\}`, "}",
	`\$`, "$",
)

// Unescape replaces escaped reserved characters with their literals.
// Applied to all rendered text; the parser keeps escapes intact so spans
// can be re-extracted faithfully.
func Unescape(text string) string {
	return latexEscapes.Replace(text)
}

// SplitRuns splits inline math out of text: each $...$ span becomes a
// math run, everything else a plain run, in original order. An escaped
// dollar never delimits math; an unmatched or empty delimiter pair stays
// literal. Escapes are resolved in every run.
func SplitRuns(text string) []ir.Run {
	var runs []ir.Run
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, ir.PlainRun(Unescape(plain.String())))
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			plain.WriteByte(c)
			plain.WriteByte(text[i+1])
			i += 2
			continue
		}
		if c == '$' {
			j := i + 1
			for j < len(text) && text[j] != '$' {
				if text[j] == '\\' && j+1 < len(text) {
					j++
				}
				j++
			}
			if j < len(text) && j > i+1 {
				flush()
				runs = append(runs, ir.MathRun(Unescape(text[i+1:j])))
				i = j + 1
				continue
			}
			plain.WriteByte(c)
			i++
			continue
		}
		plain.WriteByte(c)
		i++
	}
	flush()

	return runs
}

var (
	sqrtRe         = regexp.MustCompile(`\\sqrt\{([^}]*)\}`)
	fracRe         = regexp.MustCompile(`\\frac\{([^}]*)\}\{([^}]*)\}`)
	formulaCmdRe   = regexp.MustCompile(`\\[a-zA-Z]+`)
	formulaBraceRe = regexp.MustCompile(`[{}]`)
	formulaSpaceRe = regexp.MustCompile(`\s+`)
)

// formulaSymbols substitutes recognized commands with their glyphs.
var formulaSymbols = strings.NewReplacer(
	`\times`, "×",
	`\div`, "÷",
	`\pm`, "±",
	`\leq`, "≤",
	`\geq`, "≥",
	`\neq`, "≠",
	`\approx`, "≈",
	`\infty`, "∞",
	`\alpha`, "α",
	`\beta`, "β",
	`\gamma`, "γ",
	`\delta`, "δ",
	`\pi`, "π",
	`\sum`, "∑",
	`\prod`, "∏",
	`\int`, "∫",
	`\log`, "log",
	`\ln`, "ln",
	`\sin`, "sin",
	`\cos`, "cos",
	`\tan`, "tan",
)

// CleanFormula converts a formula source to its textual rendering:
// recognized commands become symbols, roots and fractions become bracket
// forms, unrecognized commands are stripped.
func CleanFormula(text string) string {
	text = formulaSymbols.Replace(text)
	text = sqrtRe.ReplaceAllString(text, "√($1)")
	text = fracRe.ReplaceAllString(text, "($1)/($2)")
	text = formulaCmdRe.ReplaceAllString(text, "")
	text = formulaBraceRe.ReplaceAllString(text, "")
	text = formulaSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
