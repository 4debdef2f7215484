// Package latex parses LaTeX-like markup into an ordered sequence of
// typed content blocks using an explicit environment-frame stack.
package latex

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/logging"
	"github.com/docforge-io/docstyler/internal/parser"
)

// sourceLine is one raw line with its 0-based position in the source.
type sourceLine struct {
	num  int
	text string
}

// frame is one environment-stack entry. Lines accumulate on the top
// frame only. depth counts same-name nesting for skip frames and for
// verbatim-class frames, so a region opened twice under one name needs
// two matching closes.
type frame struct {
	name   string
	policy framePolicy
	start  int // 0-based line of the \begin marker
	lines  []sourceLine
	depth  int
}

func (f *frame) text() string {
	return joinLines(f.lines)
}

// Parser parses markup source into an IR document.
type Parser struct {
	path    string
	source  string
	options parser.Options
	log     zerolog.Logger

	lines []string
	doc   *ir.Document
	stack []*frame
	para  []sourceLine
}

// New creates a parser reading from the given file path.
func New(path string, opts parser.Options) (*Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	p := NewFromSource(string(data), opts)
	p.path = path
	return p, nil
}

// NewFromSource creates a parser over in-memory source text.
func NewFromSource(source string, opts parser.Options) *Parser {
	return &Parser{
		source:  source,
		options: opts,
		log:     logging.Component(opts.Log(), "latex"),
	}
}

// Parse implements the Parser interface. Input is processed strictly
// once, top to bottom; parsing never aborts on a malformed construct
// and instead records diagnostics on the document.
func (p *Parser) Parse() (*ir.Document, error) {
	p.doc = ir.NewDocument()
	p.doc.Source = ir.Source{Path: p.path, Format: parser.FormatLaTeX.String()}
	p.lines = strings.Split(p.source, "\n")
	p.stack = nil
	p.para = nil

	// Content outside \begin{document}...\end{document} is preamble and
	// is ignored. Sources without the wrapper are treated as fragments.
	inDoc := !strings.Contains(p.source, `\begin{document}`)

	for i, line := range p.lines {
		stripped := strings.TrimSpace(line)

		if strings.Contains(stripped, `\begin{document}`) {
			inDoc = true
			continue
		}
		if strings.Contains(stripped, `\end{document}`) {
			break
		}
		if !inDoc {
			continue
		}

		// Skip frames swallow everything except their own begin/end
		// pair; verbatim-class frames store lines byte for byte and
		// close only on their own \end marker.
		if top := p.top(); top != nil {
			switch top.policy {
			case policySkip:
				if name, ok := matchBegin(stripped); ok && name == top.name {
					top.depth++
				} else if name, ok := matchEnd(stripped); ok && name == top.name {
					top.depth--
					if top.depth == 0 {
						p.pop()
					}
				}
				continue
			case policyCode, policyFormula, policyTable:
				if name, ok := matchBegin(stripped); ok && name == top.name {
					top.depth++
				} else if name, ok := matchEnd(stripped); ok && name == top.name {
					if top.depth > 0 {
						top.depth--
					} else {
						top.lines = append(top.lines, sourceLine{i, line})
						p.pop()
						p.closeFrame(top, i)
						continue
					}
				}
				top.lines = append(top.lines, sourceLine{i, line})
				continue
			}
		}

		if strings.HasPrefix(stripped, "%") {
			continue
		}

		if name, ok := matchBegin(stripped); ok {
			p.openEnvironment(name, i, line)
			continue
		}
		if name, ok := matchEnd(stripped); ok {
			p.closeEnvironment(name, i, line)
			continue
		}

		// Inside a quote, figure or list frame every remaining line is
		// collected; the frame decides what to keep when it closes.
		if top := p.top(); top != nil {
			top.lines = append(top.lines, sourceLine{i, line})
			continue
		}

		if stripped == "" {
			p.flushParagraph()
			continue
		}

		if isSkipLine(stripped) {
			continue
		}

		if caption, ok := matchCaptionLine(stripped); ok && p.attachCaption(caption, i) {
			continue
		}

		if level, ok := matchHeading(stripped); ok {
			p.flushParagraph()
			p.addHeading(level, line, i)
			continue
		}

		if hasVisibleText(stripped) {
			p.para = append(p.para, sourceLine{i, line})
		}
	}

	p.flushParagraph()
	if err := p.flushOpenFrames(); err != nil {
		return nil, err
	}

	return p.doc, nil
}

// Close releases resources. The parser holds none beyond memory.
func (p *Parser) Close() error {
	return nil
}

func (p *Parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) pop() *frame {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return f
}

// openEnvironment updates the stack for a \begin line.
func (p *Parser) openEnvironment(name string, lineNum int, line string) {
	switch pol := policyFor(name); pol {
	case policySkip:
		if len(p.stack) == 0 {
			p.flushParagraph()
		}
		p.stack = append(p.stack, &frame{name: name, policy: policySkip, start: lineNum, depth: 1})

	case policyTransparent:
		if top := p.top(); top != nil {
			top.lines = append(top.lines, sourceLine{lineNum, line})
			return
		}
		if gridEnvironments[name] {
			// A bare grid wrapper at top level carries real rows; open
			// a table frame for it instead of dropping them.
			p.flushParagraph()
			p.stack = append(p.stack, &frame{
				name: name, policy: policyTable, start: lineNum,
				lines: []sourceLine{{lineNum, line}},
			})
		}
		// other layout wrappers with no parent are dropped

	default:
		if len(p.stack) == 0 {
			p.flushParagraph()
		}
		p.stack = append(p.stack, &frame{
			name: name, policy: pol, start: lineNum,
			lines: []sourceLine{{lineNum, line}},
		})
	}
}

// closeEnvironment updates the stack for an \end line.
func (p *Parser) closeEnvironment(name string, lineNum int, line string) {
	top := p.top()
	switch policyFor(name) {
	case policySkip:
		// stray close with no open skip frame; ignore

	case policyTransparent:
		if top != nil {
			top.lines = append(top.lines, sourceLine{lineNum, line})
		}

	default:
		if top == nil || top.name != name {
			p.log.Debug().Str("environment", name).Int("line", lineNum+1).
				Msg("ignoring unmatched environment close")
			return
		}
		top.lines = append(top.lines, sourceLine{lineNum, line})
		p.pop()
		p.closeFrame(top, lineNum)
	}
}

// flushParagraph converts accumulated plain lines into one body block.
func (p *Parser) flushParagraph() {
	if len(p.para) == 0 {
		return
	}
	lines := p.para
	p.para = nil

	text := cleanText(joinLines(lines))
	if text == "" {
		return
	}
	span := ir.LineSpan(lines[0].num+1, lines[len(lines)-1].num+1)
	p.doc.AddBlock(ir.NewText(ir.KindBody, text, span))
}

// addHeading produces a heading block from a heading-command line. The
// heading text is the first balanced brace argument.
func (p *Parser) addHeading(level int, line string, lineNum int) {
	var text string
	if arg, ok := braceArg(line); ok {
		text = cleanText(arg)
	} else {
		text = cleanText(line)
	}
	kind, _ := ir.HeadingKind(level)
	p.doc.AddBlock(ir.NewText(kind, text, ir.LineSpan(lineNum+1, lineNum+1)))
}

// attachCaption attaches a stray top-level \caption line to the block it
// follows, covering the common pattern of a caption trailing a bare grid
// or verbatim environment. Returns false when there is nothing to attach
// to.
func (p *Parser) attachCaption(caption string, lineNum int) bool {
	if len(p.para) > 0 || len(p.doc.Blocks) == 0 {
		return false
	}
	caption = cleanText(caption)
	if caption == "" {
		return false
	}
	b := &p.doc.Blocks[len(p.doc.Blocks)-1]
	switch {
	case b.Table != nil && b.Table.Caption == "":
		b.Table.Caption = caption
		b.Text = caption
		b.DisplayText = ir.Preview("[表格] " + caption)
	case b.Code != nil && b.Code.Caption == "":
		b.Code.Caption = caption
		b.Text = caption
		b.DisplayText = ir.Preview("[代码] " + caption)
	default:
		return false
	}
	if lineNum+1 > b.Span.EndLine {
		b.Span.EndLine = lineNum + 1
	}
	return true
}

// flushOpenFrames reports frames left open at end of input. Lenient mode
// records a diagnostic per frame and flushes its content as body so the
// block sequence stays total; strict mode fails the parse.
func (p *Parser) flushOpenFrames() error {
	end := len(p.lines)
	for _, f := range p.stack {
		if p.options.StrictEnvironments {
			return fmt.Errorf("unterminated environment %q opened at line %d", f.name, f.start+1)
		}
		p.doc.AddDiagnostic(ir.DiagMalformedEnvironment,
			fmt.Sprintf("unterminated environment %q", f.name),
			ir.LineSpan(f.start+1, end))
		p.log.Warn().Str("environment", f.name).Int("line", f.start+1).
			Msg("unterminated environment, flushing content as body")

		if f.policy == policySkip {
			continue
		}
		if text := cleanText(f.text()); text != "" {
			p.doc.AddBlock(ir.NewText(ir.KindBody, text, ir.LineSpan(f.start+1, end)))
		}
	}
	p.stack = nil
	return nil
}

func joinLines(lines []sourceLine) string {
	parts := make([]string, len(lines))
	for i, ln := range lines {
		parts[i] = ln.text
	}
	return strings.Join(parts, "\n")
}
