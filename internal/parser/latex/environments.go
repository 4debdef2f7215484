package latex

import (
	"regexp"
	"strings"
)

// framePolicy determines how lines inside an open environment are treated.
type framePolicy int

const (
	policyUnknown     framePolicy = iota
	policySkip                    // discard everything until the matching close
	policyTransparent             // layout wrapper, content folds into the parent frame
	policyQuote                   // cleaned content becomes one quote block
	policyFigure                  // produces a caption block only when a caption exists
	policyTable                   // grid extraction on close
	policyCode                    // verbatim, lines preserved byte for byte
	policyFormula                 // verbatim, cleaned preview
	policyList                    // split at \item markers into body blocks
)

// Environment name sets. Starred variants are distinct names and listed
// explicitly where they occur in practice.
var (
	quoteEnvironments = map[string]bool{
		"abstract":  true,
		"quote":     true,
		"quotation": true,
	}

	figureEnvironments = map[string]bool{
		"figure":  true,
		"figure*": true,
	}

	tableEnvironments = map[string]bool{
		"table":  true,
		"table*": true,
	}

	codeEnvironments = map[string]bool{
		"verbatim":   true,
		"lstlisting": true,
		"minted":     true,
		"listing":    true,
	}

	listEnvironments = map[string]bool{
		"itemize":     true,
		"enumerate":   true,
		"description": true,
	}

	formulaEnvironments = map[string]bool{
		"equation": true, "equation*": true,
		"align": true, "align*": true,
		"gather": true, "gather*": true,
		"multline": true, "multline*": true,
	}

	skipEnvironments = map[string]bool{
		"tikzpicture": true,
		"pgfpicture":  true,
		"titlepage":   true,
	}

	transparentEnvironments = map[string]bool{
		"center":    true,
		"flushleft": true, "flushright": true,
		"minipage": true,
		"tabular":  true, "tabular*": true,
		"longtable": true,
	}

	// gridEnvironments are the transparent wrappers that carry table rows.
	// At top level, where there is no parent frame to fold into, they open
	// a table frame of their own instead of losing the grid.
	gridEnvironments = map[string]bool{
		"tabular": true, "tabular*": true,
		"longtable": true,
	}
)

// policyFor maps an environment name to its frame policy.
func policyFor(name string) framePolicy {
	switch {
	case skipEnvironments[name]:
		return policySkip
	case transparentEnvironments[name]:
		return policyTransparent
	case quoteEnvironments[name]:
		return policyQuote
	case figureEnvironments[name]:
		return policyFigure
	case tableEnvironments[name]:
		return policyTable
	case codeEnvironments[name]:
		return policyCode
	case listEnvironments[name]:
		return policyList
	case formulaEnvironments[name]:
		return policyFormula
	}
	return policyUnknown
}

// headingCommands maps heading commands to levels, most specific first so
// prefix matching never confuses \subsection with \section.
var headingCommands = []struct {
	cmd   string
	level int
}{
	{`\subparagraph`, 4},
	{`\subsubsection`, 3},
	{`\subsection`, 2},
	{`\paragraph`, 4},
	{`\section`, 1},
	{`\chapter`, 1},
}

// matchHeading reports whether a stripped line starts with a heading
// command, and at which level. The character after the command must end
// the command token so \sectioning-style names do not match.
func matchHeading(stripped string) (int, bool) {
	for _, h := range headingCommands {
		if !strings.HasPrefix(stripped, h.cmd) {
			continue
		}
		rest := stripped[len(h.cmd):]
		if rest == "" {
			return h.level, true
		}
		switch rest[0] {
		case '{', '[', '*', ' ', '\t':
			return h.level, true
		}
	}
	return 0, false
}

// skipLineCommands are commands that, when they start a line, mark it as
// preamble or formatting machinery with no visible text.
var skipLineCommands = []string{
	`\setlength`, `\newcommand`, `\renewcommand`, `\newenvironment`,
	`\def`, `\let`, `\makeatletter`, `\makeatother`,
	`\pagestyle`, `\thispagestyle`, `\pagenumbering`,
	`\setcounter`, `\addtocounter`, `\stepcounter`,
	`\bibliographystyle`, `\bibliography`, `\printbibliography`,
	`\tableofcontents`, `\listoffigures`, `\listoftables`,
	`\maketitle`, `\title`, `\author`, `\date`,
	`\usepackage`, `\RequirePackage`, `\documentclass`,
	`\input`, `\include`, `\includeonly`,
	`\newpage`, `\clearpage`, `\cleardoublepage`,
	`\vspace`, `\hspace`, `\vfill`, `\hfill`,
	`\centering`, `\raggedleft`, `\raggedright`,
	`\small`, `\large`, `\Large`, `\LARGE`, `\huge`, `\Huge`,
	`\normalsize`, `\footnotesize`, `\scriptsize`, `\tiny`,
	`\textwidth`, `\linewidth`, `\columnwidth`,
	`\label`, `\ref`, `\pageref`, `\eqref`,
	`\nocite`, `\phantom`, `\hphantom`, `\vphantom`,
}

var (
	envBeginRe   = regexp.MustCompile(`^\\begin\{(\w+\*?)\}`)
	envEndRe     = regexp.MustCompile(`^\\end\{(\w+\*?)\}`)
	bareCmdRe    = regexp.MustCompile(`^\\[a-zA-Z]+\s*$`)
	cmdWithArgRe = regexp.MustCompile(`^\\[a-zA-Z]+\*?(\[[^\]]*\])?(\{[^}]*\})?\s*$`)
	cmdNameRe    = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	bracketRe    = regexp.MustCompile(`\[[^\]]*\]`)
	braceTextRe  = regexp.MustCompile(`\{([^}]*)\}`)
)

// matchBegin returns the environment name when a stripped line opens an
// environment.
func matchBegin(stripped string) (string, bool) {
	m := envBeginRe.FindStringSubmatch(stripped)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchEnd returns the environment name when a stripped line closes an
// environment.
func matchEnd(stripped string) (string, bool) {
	m := envEndRe.FindStringSubmatch(stripped)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// isSkipLine reports whether a stripped line is pure formatting machinery:
// it starts with a known no-text command, or it is a lone command whose
// arguments carry no visible text.
func isSkipLine(stripped string) bool {
	for _, cmd := range skipLineCommands {
		if strings.HasPrefix(stripped, cmd) {
			return true
		}
	}
	if bareCmdRe.MatchString(stripped) {
		return true
	}
	if cmdWithArgRe.MatchString(stripped) {
		text := cmdNameRe.ReplaceAllString(stripped, "")
		text = bracketRe.ReplaceAllString(text, "")
		text = braceTextRe.ReplaceAllString(text, "$1")
		if strings.TrimSpace(text) == "" {
			return true
		}
	}
	return false
}
