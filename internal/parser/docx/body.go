package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/docforge-io/docstyler/internal/classify"
)

// paraState accumulates one body paragraph while streaming. Run attributes
// are captured from the first run that contributes text; later runs only
// contribute text, matching the single-signature-per-paragraph model.
type paraState struct {
	text      strings.Builder
	styleName string
	alignment string
	firstLine float64
	spacing   float64
	drawing   bool

	font     string
	size     float64
	bold     bool
	italic   bool
	captured bool

	runFont    string
	runSize    float64
	runBold    bool
	runItalic  bool
	runHadText bool
}

// readParagraphs walks the document body and returns the top-level
// paragraph stream. Paragraphs inside tables and text boxes are not part
// of the stream; empty paragraphs are kept so indices stay positional.
func readParagraphs(dec *xml.Decoder) ([]classify.Paragraph, error) {
	var paras []classify.Paragraph
	var stack []string
	var cur *paraState
	index := 0
	tableDepth := 0
	paraDepth := 0
	inText := false

	inCtx := func(name string) bool {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == name {
				return true
			}
		}
		return false
	}
	topLevel := func() bool { return paraDepth == 1 && tableDepth == 0 }

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml parse error: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)

			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				paraDepth++
				if topLevel() {
					cur = &paraState{alignment: "left"}
				}
			case "pStyle":
				if cur != nil && topLevel() && inCtx("pPr") {
					cur.styleName = attrVal(t, "val")
				}
			case "jc":
				if cur != nil && topLevel() && inCtx("pPr") && !inCtx("rPr") {
					cur.alignment = mapAlignment(attrVal(t, "val"))
				}
			case "ind":
				if cur != nil && topLevel() && inCtx("pPr") {
					if v := attrVal(t, "firstLine"); v != "" {
						if tw, err := strconv.ParseFloat(v, 64); err == nil {
							cur.firstLine = tw / 20 // twips to points
						}
					}
				}
			case "spacing":
				if cur != nil && topLevel() && inCtx("pPr") && !inCtx("rPr") {
					cur.spacing = lineSpacing(t)
				}
			case "r":
				if cur != nil && topLevel() {
					cur.runFont = ""
					cur.runSize = 0
					cur.runBold = false
					cur.runItalic = false
					cur.runHadText = false
				}
			case "rFonts":
				if cur != nil && topLevel() && inCtx("rPr") {
					if v := attrVal(t, "eastAsia"); v != "" {
						cur.runFont = v
					} else if v := attrVal(t, "ascii"); v != "" {
						cur.runFont = v
					}
				}
			case "sz":
				if cur != nil && topLevel() && inCtx("rPr") {
					if hp, err := strconv.ParseFloat(attrVal(t, "val"), 64); err == nil {
						cur.runSize = hp / 2 // half-points to points
					}
				}
			case "b":
				if cur != nil && topLevel() && inCtx("rPr") && flagOn(attrVal(t, "val")) {
					cur.runBold = true
				}
			case "i":
				if cur != nil && topLevel() && inCtx("rPr") && flagOn(attrVal(t, "val")) {
					cur.runItalic = true
				}
			case "t":
				inText = cur != nil && topLevel() && inCtx("r")
			case "tab":
				if cur != nil && topLevel() && inCtx("r") {
					cur.text.WriteByte('\t')
				}
			case "br", "cr":
				if cur != nil && topLevel() && inCtx("r") {
					cur.text.WriteByte('\n')
				}
			case "drawing", "pict", "object":
				if cur != nil && topLevel() {
					cur.drawing = true
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "t":
				inText = false
			case "r":
				if cur != nil && topLevel() && cur.runHadText && !cur.captured {
					cur.font = cur.runFont
					cur.size = cur.runSize
					cur.bold = cur.runBold
					cur.italic = cur.runItalic
					cur.captured = true
				}
			case "p":
				if cur != nil && topLevel() {
					paras = append(paras, classify.Paragraph{
						Index:           index,
						Text:            strings.TrimSpace(cur.text.String()),
						StyleName:       cur.styleName,
						FontName:        cur.font,
						FontSize:        cur.size,
						Bold:            cur.bold,
						Italic:          cur.italic,
						Alignment:       cur.alignment,
						FirstLineIndent: cur.firstLine,
						LineSpacing:     cur.spacing,
						HasDrawing:      cur.drawing,
					})
					index++
					cur = nil
				}
				if paraDepth > 0 {
					paraDepth--
				}
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if inText && cur != nil {
				cur.text.Write(t)
				cur.runHadText = true
			}
		}
	}

	return paras, nil
}

func attrVal(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// flagOn reports whether a toggle attribute is enabled. Presence without
// a value means on.
func flagOn(v string) bool {
	switch v {
	case "0", "false", "none", "off":
		return false
	}
	return true
}

func mapAlignment(v string) string {
	switch v {
	case "center":
		return "center"
	case "right", "end":
		return "right"
	case "both", "justify", "distribute":
		return "justify"
	}
	return "left"
}

// lineSpacing converts a w:spacing element to either a multiple (auto
// rule, 240ths of a line) or points (exact rules, twips).
func lineSpacing(e xml.StartElement) float64 {
	v := attrVal(e, "line")
	if v == "" {
		return 0
	}
	line, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	switch attrVal(e, "lineRule") {
	case "", "auto":
		return line / 240
	}
	return line / 20
}
