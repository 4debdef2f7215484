package latex

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/parser"
)

func parseSource(t *testing.T, source string) *ir.Document {
	t.Helper()

	p := NewFromSource(source, parser.Options{})
	defer p.Close()

	doc, err := p.Parse()
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if doc == nil {
		t.Fatal("expected non-nil document")
	}
	return doc
}

func TestParse_RoundTrip(t *testing.T) {
	source := `\section{Intro}

One line of text.

\begin{tabular}{cc}
A & B \\
C & D \\
\end{tabular}
\caption{T1}
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}

	if doc.Blocks[0].OriginalKind != ir.KindHeading1 {
		t.Errorf("expected heading1, got %s", doc.Blocks[0].OriginalKind)
	}
	if doc.Blocks[0].Text != "Intro" {
		t.Errorf("expected heading text 'Intro', got %q", doc.Blocks[0].Text)
	}

	if doc.Blocks[1].OriginalKind != ir.KindBody {
		t.Errorf("expected body, got %s", doc.Blocks[1].OriginalKind)
	}
	if doc.Blocks[1].Text != "One line of text." {
		t.Errorf("expected body text 'One line of text.', got %q", doc.Blocks[1].Text)
	}

	table := doc.Blocks[2].Table
	if table == nil {
		t.Fatal("expected table block")
	}
	wantRows := [][]string{{"A", "B"}, {"C", "D"}}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("expected rows %v, got %v", wantRows, table.Rows)
	}
	if table.Caption != "T1" {
		t.Errorf("expected caption 'T1', got %q", table.Caption)
	}
}

func TestParse_Deterministic(t *testing.T) {
	source := `\section{Intro}

First paragraph spanning
two lines.

\begin{quote}
Quoted text.
\end{quote}

\begin{equation}
E = mc^2
\end{equation}
`
	first := parseSource(t, source)
	second := parseSource(t, source)

	if len(first.Blocks) != len(second.Blocks) {
		t.Fatalf("block counts differ: %d vs %d", len(first.Blocks), len(second.Blocks))
	}
	for i := range first.Blocks {
		a, b := first.Blocks[i], second.Blocks[i]
		if a.Index != b.Index || a.OriginalKind != b.OriginalKind || a.Text != b.Text || a.Span != b.Span {
			t.Errorf("block %d differs between parses: %+v vs %+v", i, a, b)
		}
	}
}

func TestParse_DenseIndices(t *testing.T) {
	source := `\section{One}

Body text.

\subsection{Two}
`
	doc := parseSource(t, source)

	for i, b := range doc.Blocks {
		if b.Index != i {
			t.Errorf("expected index %d, got %d", i, b.Index)
		}
	}
}

func TestParse_HeadingLevels(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind ir.BlockKind
		text string
	}{
		{"chapter", `\chapter{Overview}`, ir.KindHeading1, "Overview"},
		{"section", `\section{Introduction}`, ir.KindHeading1, "Introduction"},
		{"starred section", `\section*{Unnumbered}`, ir.KindHeading1, "Unnumbered"},
		{"subsection", `\subsection{Background}`, ir.KindHeading2, "Background"},
		{"subsubsection", `\subsubsection{Prior Work}`, ir.KindHeading3, "Prior Work"},
		{"paragraph", `\paragraph{Note}`, ir.KindHeading4, "Note"},
		{"subparagraph", `\subparagraph{Detail}`, ir.KindHeading4, "Detail"},
		{"nested braces", `\section{The \textbf{Big} One}`, ir.KindHeading1, "The Big One"},
		{"trailing label", `\section{Intro}\label{sec:intro}`, ir.KindHeading1, "Intro"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := parseSource(t, tc.line+"\n")
			if len(doc.Blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
			}
			if doc.Blocks[0].OriginalKind != tc.kind {
				t.Errorf("expected %s, got %s", tc.kind, doc.Blocks[0].OriginalKind)
			}
			if doc.Blocks[0].Text != tc.text {
				t.Errorf("expected text %q, got %q", tc.text, doc.Blocks[0].Text)
			}
		})
	}
}

func TestParse_ParagraphAccumulation(t *testing.T) {
	source := `First paragraph line one
line two.

Second paragraph.
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Text != "First paragraph line one line two." {
		t.Errorf("unexpected first paragraph: %q", doc.Blocks[0].Text)
	}
	if doc.Blocks[1].Text != "Second paragraph." {
		t.Errorf("unexpected second paragraph: %q", doc.Blocks[1].Text)
	}
	if doc.Blocks[0].Span.StartLine != 1 || doc.Blocks[0].Span.EndLine != 2 {
		t.Errorf("expected span 1..2, got %d..%d",
			doc.Blocks[0].Span.StartLine, doc.Blocks[0].Span.EndLine)
	}
}

func TestParse_CenteringDoesNotSplitParagraph(t *testing.T) {
	source := `First half of the sentence
\centering
and the second half.
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	want := "First half of the sentence and the second half."
	if doc.Blocks[0].Text != want {
		t.Errorf("expected %q, got %q", want, doc.Blocks[0].Text)
	}
}

func TestParse_SkipCommandLines(t *testing.T) {
	source := `\maketitle
\tableofcontents
\vspace{2em}
\label{sec:x}

Actual content.
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Text != "Actual content." {
		t.Errorf("expected 'Actual content.', got %q", doc.Blocks[0].Text)
	}
}

func TestParse_DocumentWrapper(t *testing.T) {
	source := `\documentclass{article}
\usepackage{amsmath}
This preamble text is ignored.
\begin{document}
Real content.
\end{document}
Trailing text is ignored.
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Text != "Real content." {
		t.Errorf("expected 'Real content.', got %q", doc.Blocks[0].Text)
	}
}

func TestParse_FragmentWithoutWrapper(t *testing.T) {
	doc := parseSource(t, "Bare fragment text.\n")

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].OriginalKind != ir.KindBody {
		t.Errorf("expected body, got %s", doc.Blocks[0].OriginalKind)
	}
}

func TestParse_CommentLines(t *testing.T) {
	source := `% a comment line
Visible text.
% another comment
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Text != "Visible text." {
		t.Errorf("expected 'Visible text.', got %q", doc.Blocks[0].Text)
	}
}

func TestParse_SkipRegionSameNameNesting(t *testing.T) {
	source := `Before drawing.

\begin{tikzpicture}
\draw (0,0) -- (1,1);
\begin{tikzpicture}
\node {inner};
\end{tikzpicture}
Still hidden.
\end{tikzpicture}
After drawing.
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Text != "Before drawing." {
		t.Errorf("expected 'Before drawing.', got %q", doc.Blocks[0].Text)
	}
	if doc.Blocks[1].Text != "After drawing." {
		t.Errorf("expected 'After drawing.', got %q", doc.Blocks[1].Text)
	}
}

func TestParse_SkipRegionDifferentNames(t *testing.T) {
	source := `\begin{tikzpicture}
\begin{titlepage}
Hidden either way.
\end{titlepage}
\end{tikzpicture}
Visible.
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Text != "Visible." {
		t.Errorf("expected 'Visible.', got %q", doc.Blocks[0].Text)
	}
}

func TestParse_QuoteEnvironments(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"quote", "quote"},
		{"quotation", "quotation"},
		{"abstract", "abstract"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := "\\begin{" + tc.env + "}\nWise words here.\n\\end{" + tc.env + "}\n"
			doc := parseSource(t, source)

			if len(doc.Blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
			}
			if doc.Blocks[0].OriginalKind != ir.KindQuote {
				t.Errorf("expected quote, got %s", doc.Blocks[0].OriginalKind)
			}
			if doc.Blocks[0].Text != "Wise words here." {
				t.Errorf("expected 'Wise words here.', got %q", doc.Blocks[0].Text)
			}
		})
	}
}

func TestParse_ListItems(t *testing.T) {
	source := `\begin{itemize}
\item Apple pie
\item Banana split
continued on a second line
\item[*] Cherry tart
\end{itemize}
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}
	wantTexts := []string{
		"Apple pie",
		"Banana split continued on a second line",
		"Cherry tart",
	}
	for i, want := range wantTexts {
		if doc.Blocks[i].OriginalKind != ir.KindBody {
			t.Errorf("block %d: expected body, got %s", i, doc.Blocks[i].OriginalKind)
		}
		if doc.Blocks[i].Text != want {
			t.Errorf("block %d: expected %q, got %q", i, want, doc.Blocks[i].Text)
		}
	}
}

func TestParse_CodeEnvironment(t *testing.T) {
	source := "\\begin{verbatim}\ndef f(x):\n    return x\n\\end{verbatim}\n"
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	code := doc.Blocks[0].Code
	if code == nil {
		t.Fatal("expected code block")
	}
	wantLines := []string{"def f(x):", "    return x"}
	if !reflect.DeepEqual(code.Lines, wantLines) {
		t.Errorf("expected lines %q, got %q", wantLines, code.Lines)
	}
}

func TestParse_CodeCaptionOption(t *testing.T) {
	source := "\\begin{lstlisting}[caption=Sort algorithm, label=lst:sort]\nquickSort(arr)\n\\end{lstlisting}\n"
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	code := doc.Blocks[0].Code
	if code == nil {
		t.Fatal("expected code block")
	}
	if code.Caption != "Sort algorithm" {
		t.Errorf("expected caption 'Sort algorithm', got %q", code.Caption)
	}
}

func TestParse_VerbatimKeepsMarkupLines(t *testing.T) {
	source := "\\begin{verbatim}\n% not a comment here\n\\begin{itemize}\n\\end{verbatim}\n"
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	code := doc.Blocks[0].Code
	if code == nil {
		t.Fatal("expected code block")
	}
	wantLines := []string{"% not a comment here", `\begin{itemize}`}
	if !reflect.DeepEqual(code.Lines, wantLines) {
		t.Errorf("expected lines %q, got %q", wantLines, code.Lines)
	}
}

func TestParse_FormulaEnvironment(t *testing.T) {
	source := "\\begin{equation}\nE = mc^2\n\\end{equation}\n"
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	formula := doc.Blocks[0].Formula
	if formula == nil {
		t.Fatal("expected formula block")
	}
	if formula.Source != "E = mc^2" {
		t.Errorf("expected source 'E = mc^2', got %q", formula.Source)
	}
}

func TestParse_TableEnvironment(t *testing.T) {
	source := `\begin{table}
\centering
\caption{Results}
\begin{tabular}{|c|c|}
\hline
Name & Score \\
\hline
Alice & 90 \\
Bob & 85 \\
\hline
\end{tabular}
\label{tab:results}
\end{table}
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	table := doc.Blocks[0].Table
	if table == nil {
		t.Fatal("expected table block")
	}
	if table.Caption != "Results" {
		t.Errorf("expected caption 'Results', got %q", table.Caption)
	}
	wantRows := [][]string{{"Name", "Score"}, {"Alice", "90"}, {"Bob", "85"}}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("expected rows %v, got %v", wantRows, table.Rows)
	}
	if !table.HasHeader {
		t.Error("expected header row flag")
	}
	if doc.Blocks[0].Span.StartLine != 1 || doc.Blocks[0].Span.EndLine != 13 {
		t.Errorf("expected span 1..13, got %d..%d",
			doc.Blocks[0].Span.StartLine, doc.Blocks[0].Span.EndLine)
	}
}

func TestParse_EscapedCellSeparator(t *testing.T) {
	source := `\begin{tabular}{cc}
Tom \& Jerry & 10 \\
\end{tabular}
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	table := doc.Blocks[0].Table
	if table == nil {
		t.Fatal("expected table block")
	}
	if len(table.Rows) != 1 || len(table.Rows[0]) != 2 {
		t.Fatalf("expected 1 row with 2 cells, got %v", table.Rows)
	}
	if table.Rows[0][0] != `Tom \& Jerry` {
		t.Errorf("expected escaped cell 'Tom \\& Jerry', got %q", table.Rows[0][0])
	}
}

func TestParse_FigureCaption(t *testing.T) {
	source := `\begin{figure}
\centering
\includegraphics[width=0.8\textwidth]{results.png}
\caption{Accuracy over time}
\label{fig:acc}
\end{figure}
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].OriginalKind != ir.KindCaption {
		t.Errorf("expected caption, got %s", doc.Blocks[0].OriginalKind)
	}
	if doc.Blocks[0].Text != "Accuracy over time" {
		t.Errorf("expected 'Accuracy over time', got %q", doc.Blocks[0].Text)
	}

	if len(doc.Images) != 1 {
		t.Fatalf("expected 1 image ref, got %d", len(doc.Images))
	}
	if doc.Images[0].Name != "results.png" {
		t.Errorf("expected image 'results.png', got %q", doc.Images[0].Name)
	}
	if doc.Images[0].Format != "png" {
		t.Errorf("expected format 'png', got %q", doc.Images[0].Format)
	}
}

func TestParse_FigureWithoutCaption(t *testing.T) {
	source := `\begin{figure}
\includegraphics{plot.pdf}
\end{figure}
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 0 {
		t.Errorf("expected no blocks for captionless figure, got %d", len(doc.Blocks))
	}
	if len(doc.Images) != 1 {
		t.Errorf("expected 1 image ref, got %d", len(doc.Images))
	}
}

func TestParse_MissingImagePlaceholder(t *testing.T) {
	source := `\begin{figure}
\includegraphics{missing.png}
\caption{Ghost}
\end{figure}
`
	p := NewFromSource(source, parser.Options{ExtractImages: true})
	defer p.Close()

	doc, err := p.Parse()
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if len(doc.Blocks) != 2 {
		t.Fatalf("expected placeholder and caption blocks, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].OriginalKind != ir.KindBody {
		t.Errorf("expected body placeholder, got %s", doc.Blocks[0].OriginalKind)
	}
	if doc.Blocks[0].Text != "[图片] missing.png" {
		t.Errorf("unexpected placeholder text %q", doc.Blocks[0].Text)
	}

	if len(doc.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(doc.Diagnostics))
	}
	if doc.Diagnostics[0].Code != ir.DiagAssetUnavailable {
		t.Errorf("expected %s, got %s", ir.DiagAssetUnavailable, doc.Diagnostics[0].Code)
	}
}

func TestParse_ImageExtraction(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "doc.tex")
	imgData := []byte{0x89, 'P', 'N', 'G'}
	if err := os.WriteFile(filepath.Join(dir, "fig.png"), imgData, 0644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	source := `\begin{figure}
\includegraphics{fig.png}
\caption{A figure}
\end{figure}
`
	if err := os.WriteFile(srcPath, []byte(source), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	p, err := New(srcPath, parser.Options{ExtractImages: true, ImageDir: outDir})
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	defer p.Close()

	doc, err := p.Parse()
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if len(doc.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(doc.Images))
	}
	img := doc.Images[0]
	if img.Extracted == "" {
		t.Fatal("expected image to be extracted")
	}
	data, err := os.ReadFile(img.Extracted)
	if err != nil {
		t.Fatalf("failed to read extracted image: %v", err)
	}
	if string(data) != string(imgData) {
		t.Error("extracted image content differs")
	}
	if img.Size != int64(len(imgData)) {
		t.Errorf("expected size %d, got %d", len(imgData), img.Size)
	}
}

func TestParse_TransparentEnvironment(t *testing.T) {
	source := `\begin{center}
Centered statement.
\end{center}
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].OriginalKind != ir.KindBody {
		t.Errorf("expected body, got %s", doc.Blocks[0].OriginalKind)
	}
	if doc.Blocks[0].Text != "Centered statement." {
		t.Errorf("expected 'Centered statement.', got %q", doc.Blocks[0].Text)
	}
}

func TestParse_InlineMathPreserved(t *testing.T) {
	doc := parseSource(t, "Let $x + y$ be the sum.\n")

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Text != "Let $x + y$ be the sum." {
		t.Errorf("inline math not preserved: %q", doc.Blocks[0].Text)
	}
}

func TestParse_EscapedCharactersPreserved(t *testing.T) {
	doc := parseSource(t, `Growth was 50\% in Q1 \& Q2.`+"\n")

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	want := `Growth was 50\% in Q1 \& Q2.`
	if doc.Blocks[0].Text != want {
		t.Errorf("expected %q, got %q", want, doc.Blocks[0].Text)
	}
}

func TestParse_UnterminatedEnvironment(t *testing.T) {
	source := `\begin{quote}
Unfinished thought
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 flushed block, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].OriginalKind != ir.KindBody {
		t.Errorf("expected body, got %s", doc.Blocks[0].OriginalKind)
	}
	if doc.Blocks[0].Text != "Unfinished thought" {
		t.Errorf("expected 'Unfinished thought', got %q", doc.Blocks[0].Text)
	}

	if len(doc.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(doc.Diagnostics))
	}
	if doc.Diagnostics[0].Code != ir.DiagMalformedEnvironment {
		t.Errorf("expected %s, got %s", ir.DiagMalformedEnvironment, doc.Diagnostics[0].Code)
	}
}

func TestParse_UnterminatedEnvironmentStrict(t *testing.T) {
	p := NewFromSource("\\begin{quote}\ntext\n", parser.Options{StrictEnvironments: true})
	defer p.Close()

	if _, err := p.Parse(); err == nil {
		t.Error("expected error in strict mode")
	}
}

func TestParse_HeadingTerminatesParagraph(t *testing.T) {
	source := `Some text before.
\section{Break}
Some text after.
`
	doc := parseSource(t, source)

	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}
	wantKinds := []ir.BlockKind{ir.KindBody, ir.KindHeading1, ir.KindBody}
	for i, want := range wantKinds {
		if doc.Blocks[i].OriginalKind != want {
			t.Errorf("block %d: expected %s, got %s", i, want, doc.Blocks[i].OriginalKind)
		}
	}
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/source.tex", parser.Options{})
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestNew_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.tex")
	if err := os.WriteFile(path, []byte("Hello from a file.\n"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	p, err := New(path, parser.Options{})
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	defer p.Close()

	doc, err := p.Parse()
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	if doc.Source.Path != path {
		t.Errorf("expected source path %q, got %q", path, doc.Source.Path)
	}
	if doc.Source.Format != "latex" {
		t.Errorf("expected format 'latex', got %q", doc.Source.Format)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", `\textbf{important}`, "important"},
		{"italic", `\textit{slanted} text`, "slanted text"},
		{"label dropped", `text \label{sec:a} more`, "text more"},
		{"ref marker", `see \ref{fig:1}`, "see [ref]"},
		{"cite marker", `as shown \cite{smith2020}`, "as shown [cite]"},
		{"unknown command keeps arg", `\mbox{kept}`, "kept"},
		{"whitespace collapse", "a  b\t c", "a b c"},
		{"escaped braces", `\{literal\}`, `\{literal\}`},
		{"inline math untouched", `sum $\alpha + \beta$ done`, `sum $\alpha + \beta$ done`},
		{"escaped dollar not math", `cost \$5 plus \$2`, `cost \$5 plus \$2`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanText(tc.in); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestMatchHeading(t *testing.T) {
	tests := []struct {
		line  string
		level int
		ok    bool
	}{
		{`\section{X}`, 1, true},
		{`\subsection{X}`, 2, true},
		{`\subsubsection{X}`, 3, true},
		{`\paragraph{X}`, 4, true},
		{`\subparagraph{X}`, 4, true},
		{`\chapter{X}`, 1, true},
		{`\section*{X}`, 1, true},
		{`\sectioning{X}`, 0, false},
		{`plain text`, 0, false},
	}

	for _, tc := range tests {
		level, ok := matchHeading(tc.line)
		if ok != tc.ok || level != tc.level {
			t.Errorf("matchHeading(%q): expected (%d, %v), got (%d, %v)",
				tc.line, tc.level, tc.ok, level, ok)
		}
	}
}

func TestIsSkipLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`\maketitle`, true},
		{`\vspace{1em}`, true},
		{`\centering`, true},
		{`\usepackage[utf8]{inputenc}`, true},
		{`\textbf{visible}`, false},
		{`plain text`, false},
		{`\caption{T1}`, false},
	}

	for _, tc := range tests {
		if got := isSkipLine(tc.line); got != tc.want {
			t.Errorf("isSkipLine(%q): expected %v, got %v", tc.line, tc.want, got)
		}
	}
}
