package latex

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docforge-io/docstyler/internal/ir"
)

var (
	ruleTokenRe       = regexp.MustCompile(`\\(?:toprule|midrule|bottomrule|hline)\b|\\cline\{[^}]*\}`)
	rowOptionRe       = regexp.MustCompile(`^\s*\[[^\]]*\]`)
	codeCaptionRe     = regexp.MustCompile(`caption=([^,\]]+)`)
	includeGraphicsRe = regexp.MustCompile(`\\includegraphics(?:\[[^\]]*\])?\{([^}]*)\}`)
)

// closeFrame converts a completed frame into blocks per its policy.
func (p *Parser) closeFrame(f *frame, endLine int) {
	span := ir.LineSpan(f.start+1, endLine+1)
	switch f.policy {
	case policyList:
		p.addListItems(f)
	case policyTable:
		p.addTable(f, span)
	case policyFigure:
		p.addFigure(f, span)
	case policyCode:
		p.addCode(f, span)
	case policyFormula:
		p.addFormula(f, span)
	case policyQuote:
		p.addQuote(f, span)
	default:
		p.log.Debug().Str("environment", f.name).Int("line", f.start+1).
			Msg("dropping unhandled environment")
	}
}

// addListItems splits a list frame at \item markers; each item becomes
// one body block after markup is stripped.
func (p *Parser) addListItems(f *frame) {
	var item []sourceLine
	for _, ln := range f.lines {
		if strings.HasPrefix(strings.TrimSpace(ln.text), `\item`) {
			p.flushListItem(item)
			item = []sourceLine{ln}
			continue
		}
		if len(item) > 0 {
			item = append(item, ln)
		}
	}
	p.flushListItem(item)
}

var itemMarkerRe = regexp.MustCompile(`\\item\s*(\[[^\]]*\])?\s*`)

func (p *Parser) flushListItem(item []sourceLine) {
	if len(item) == 0 {
		return
	}
	text := cleanText(itemMarkerRe.ReplaceAllString(joinLines(item), ""))
	if text == "" {
		return
	}
	span := ir.LineSpan(item[0].num+1, item[len(item)-1].num+1)
	p.doc.AddBlock(ir.NewText(ir.KindBody, text, span))
}

// addTable produces one table block for the whole frame: grid cells
// extracted from the wrapped rows, caption from the first \caption.
func (p *Parser) addTable(f *frame, span ir.Span) {
	raw := f.text()
	caption := ""
	if c, ok := findCaption(raw); ok {
		caption = cleanText(c)
	}

	b := ir.NewTable(extractGrid(f.lines), caption, span)
	if caption != "" {
		b.DisplayText = ir.Preview("[表格] " + caption)
	} else {
		b.DisplayText = "[表格]"
	}
	p.doc.AddBlock(b)
}

// addFigure produces a caption block when the frame carries a caption;
// a captionless figure contributes no block. Image references are
// recorded either way and optionally extracted.
func (p *Parser) addFigure(f *frame, span ir.Span) {
	raw := f.text()

	for _, m := range includeGraphicsRe.FindAllStringSubmatch(raw, -1) {
		ref := ir.ImageRef{
			Name:   m[1],
			Format: strings.TrimPrefix(filepath.Ext(m[1]), "."),
		}
		if p.options.ExtractImages {
			p.extractImage(&ref, span)
		}
		p.doc.AddImage(ref)
	}

	caption, ok := findCaption(raw)
	if !ok {
		return
	}
	caption = cleanText(caption)
	b := ir.NewText(ir.KindCaption, caption, span)
	b.DisplayText = ir.Preview("[图片] " + caption)
	p.doc.AddBlock(b)
}

// extractImage resolves an image path against the source directory and
// copies it into the image directory. A missing or unreadable file
// degrades to an asset diagnostic plus a placeholder body block.
func (p *Parser) extractImage(ref *ir.ImageRef, span ir.Span) {
	src := ref.Name
	if !filepath.IsAbs(src) && p.path != "" {
		src = filepath.Join(filepath.Dir(p.path), src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		p.doc.AddDiagnostic(ir.DiagAssetUnavailable,
			fmt.Sprintf("image %s: %v", ref.Name, err), span)
		p.doc.AddBlock(ir.NewText(ir.KindBody, "[图片] "+ref.Name, span))
		p.log.Warn().Str("image", ref.Name).Err(err).Msg("image unavailable, emitting placeholder")
		return
	}
	ref.Size = int64(len(data))

	if p.options.ImageDir == "" {
		return
	}
	if err := os.MkdirAll(p.options.ImageDir, 0755); err != nil {
		p.doc.AddDiagnostic(ir.DiagAssetUnavailable,
			fmt.Sprintf("image dir %s: %v", p.options.ImageDir, err), span)
		return
	}
	out := filepath.Join(p.options.ImageDir, filepath.Base(src))
	if err := os.WriteFile(out, data, 0644); err != nil {
		p.doc.AddDiagnostic(ir.DiagAssetUnavailable,
			fmt.Sprintf("image %s: %v", ref.Name, err), span)
		return
	}
	ref.Extracted = out
}

// addCode produces one code block with the frame interior byte for byte.
func (p *Parser) addCode(f *frame, span ir.Span) {
	interior := interiorLines(f)
	caption := ""
	if m := codeCaptionRe.FindStringSubmatch(f.text()); m != nil {
		caption = strings.TrimSpace(m[1])
	}

	b := ir.NewCode(interior, caption, span)
	if caption != "" {
		b.DisplayText = ir.Preview("[代码] " + caption)
	} else {
		b.DisplayText = "[代码] " + truncateRunes(codePreview(interior), 50) + "..."
	}
	p.doc.AddBlock(b)
}

// codePreview joins the first two non-blank code lines.
func codePreview(lines []string) string {
	var parts []string
	for _, ln := range lines {
		if s := strings.TrimSpace(ln); s != "" {
			parts = append(parts, s)
		}
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, " ")
}

// addFormula produces one formula block: raw interior for rendering, a
// command-stripped preview for display.
func (p *Parser) addFormula(f *frame, span ir.Span) {
	interior := interiorLines(f)
	source := strings.Join(interior, "\n")
	cleaned := cleanText(source)

	b := ir.NewFormula(source, cleaned, span)
	b.DisplayText = "[公式] " + truncateRunes(cleaned, 50) + "..."
	p.doc.AddBlock(b)
}

// addQuote produces one quote block when the cleaned content is
// non-empty.
func (p *Parser) addQuote(f *frame, span ir.Span) {
	text := cleanText(f.text())
	if text == "" {
		return
	}
	p.doc.AddBlock(ir.NewText(ir.KindQuote, text, span))
}

// interiorLines returns the frame content without its begin/end marker
// lines, whitespace untouched.
func interiorLines(f *frame) []string {
	if len(f.lines) < 2 {
		return nil
	}
	out := make([]string, 0, len(f.lines)-2)
	for _, ln := range f.lines[1 : len(f.lines)-1] {
		out = append(out, ln.text)
	}
	return out
}

// gridWrapperNames lists grid wrappers with the starred form first so
// plain-name matching cannot shadow it.
var gridWrapperNames = []string{"tabular*", "tabular", "longtable"}

// extractGrid pulls the cell grid out of a table frame: wrapper markers
// and their column specs removed, rule tokens stripped, rows split on \\
// and cells on unescaped &, every cell cleaned and trimmed.
func extractGrid(lines []sourceLine) [][]string {
	var sb strings.Builder
	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln.text), "%") {
			continue
		}
		sb.WriteString(ln.text)
		sb.WriteByte('\n')
	}

	text := stripGridWrappers(sb.String())
	text = beginEndRe.ReplaceAllString(text, "")
	text = ruleTokenRe.ReplaceAllString(text, "")
	text = stripCommandArg(text, `\caption`)
	text = labelCmdRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\centering`, "")
	text = strings.ReplaceAll(text, `\&`, escAmp)

	var rows [][]string
	for _, rowText := range strings.Split(text, `\\`) {
		rowText = rowOptionRe.ReplaceAllString(rowText, "")
		if strings.TrimSpace(rowText) == "" {
			continue
		}
		var cells []string
		empty := true
		for _, cell := range strings.Split(rowText, "&") {
			cell = strings.ReplaceAll(cell, escAmp, `\&`)
			cell = cleanText(cell)
			if cell != "" {
				empty = false
			}
			cells = append(cells, cell)
		}
		if !empty {
			rows = append(rows, cells)
		}
	}
	return rows
}

// stripGridWrappers removes \begin/\end markers of grid wrappers along
// with their arguments. Column specs are brace-balanced because they can
// nest groups like p{2cm}.
func stripGridWrappers(text string) string {
	out := text
	for _, name := range gridWrapperNames {
		begin := `\begin{` + name + `}`
		for {
			idx := strings.Index(out, begin)
			if idx < 0 {
				break
			}
			end := idx + len(begin)
			rest := out[end:]
			rest, end = trimSpaceCounting(rest, end)
			if strings.HasPrefix(rest, "[") {
				if c := strings.Index(rest, "]"); c >= 0 {
					end += c + 1
					rest = rest[c+1:]
				}
			}
			nargs := 1
			if name == "tabular*" {
				nargs = 2 // {width}{colspec}
			}
			for a := 0; a < nargs; a++ {
				rest, end = trimSpaceCounting(rest, end)
				arg, ok := bracedPrefix(rest)
				if !ok {
					break
				}
				end += len(arg) + 2
				rest = rest[len(arg)+2:]
			}
			out = out[:idx] + out[end:]
		}
		out = strings.ReplaceAll(out, `\end{`+name+`}`, "")
	}
	return out
}

func trimSpaceCounting(s string, pos int) (string, int) {
	trimmed := strings.TrimLeft(s, " \t")
	return trimmed, pos + len(s) - len(trimmed)
}

// stripCommandArg removes every occurrence of a command together with an
// optional bracket option and its balanced brace argument.
func stripCommandArg(text, cmd string) string {
	for {
		idx := strings.Index(text, cmd)
		if idx < 0 {
			return text
		}
		rest := text[idx+len(cmd):]
		cut := 0
		rest, cut = trimSpaceCounting(rest, cut)
		if strings.HasPrefix(rest, "[") {
			c := strings.Index(rest, "]")
			if c < 0 {
				return text
			}
			cut += c + 1
			rest = rest[c+1:]
			rest, cut = trimSpaceCounting(rest, cut)
		}
		arg, ok := bracedPrefix(rest)
		if !ok {
			return text
		}
		cut += len(arg) + 2
		text = text[:idx] + text[idx+len(cmd)+cut:]
	}
}
