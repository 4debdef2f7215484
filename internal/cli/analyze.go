package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docforge-io/docstyler/internal/classify"
	"github.com/docforge-io/docstyler/internal/convert"
	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/parser"
)

var (
	analyzeFormat string
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "分析文档结构与格式分组",
	Long: `解析文档并报告块序列与格式分组，不执行排版。

报告包含每个格式分组的特征串、成员段落、推断类别与预览，
带 (?) 的类别为低置信度推断。特征串可直接用于 convert 的
--override 与 --only 参数。

示例:
  docstyler analyze thesis.docx
  docstyler analyze thesis.docx --json
  docstyler analyze paper.tex`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "auto", "输入格式 (auto, latex, docx, doc)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "以 JSON 输出报告")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := buildLogger(cmd, cfg, false, false)

	format, err := parser.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}

	pipeline := convert.New(convert.Options{
		Format:     format,
		Thresholds: cfg.Thresholds,
		Extractor:  extractorConfig(cfg),
		Logger:     &log,
	})
	res, err := pipeline.Analyze(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("分析失败: %w", err)
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(buildAnalyzeReport(res), "", "  ")
		if err != nil {
			return fmt.Errorf("JSON 输出失败: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printAnalysis(cmd, res)
	return nil
}

// analyzeReport is the --json payload consumed by UI layers.
type analyzeReport struct {
	Format      string           `json:"format"`
	Blocks      []analyzeBlock   `json:"blocks"`
	Groups      []classify.Group `json:"groups,omitempty"`
	Images      int              `json:"images,omitempty"`
	Diagnostics []ir.Diagnostic  `json:"diagnostics,omitempty"`
}

type analyzeBlock struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Group string `json:"group,omitempty"`
	Text  string `json:"text"`
}

func buildAnalyzeReport(res *convert.Result) analyzeReport {
	doc := res.Document
	report := analyzeReport{
		Format:      res.Format.String(),
		Groups:      res.Groups,
		Images:      len(doc.Images),
		Diagnostics: doc.Diagnostics,
	}
	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		report.Blocks = append(report.Blocks, analyzeBlock{
			Index: b.Index,
			Kind:  string(b.OriginalKind),
			Group: b.Group,
			Text:  blockPreview(b),
		})
	}
	return report
}

func printAnalysis(cmd *cobra.Command, res *convert.Result) {
	out := cmd.OutOrStdout()
	doc := res.Document

	fmt.Fprintf(out, "文件: %s (%s)\n", doc.Source.Path, res.Format)
	fmt.Fprintf(out, "块数: %d  图片: %d  诊断: %d\n\n", len(doc.Blocks), len(doc.Images), len(doc.Diagnostics))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if len(res.Groups) > 0 {
		fmt.Fprintln(out, "格式分组:")
		fmt.Fprintln(w, "特征串\t成员数\t推断类别\t预览")
		for _, g := range res.Groups {
			kind := string(g.GuessedKind)
			if g.Ambiguous {
				kind += " (?)"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", g.Signature, len(g.Members), kind, g.Sample)
		}
	} else {
		fmt.Fprintln(out, "块序列:")
		fmt.Fprintln(w, "序号\t类别\t内容")
		for i := range doc.Blocks {
			b := &doc.Blocks[i]
			fmt.Fprintf(w, "%d\t%s\t%s\n", b.Index, b.OriginalKind, blockPreview(b))
		}
	}
	w.Flush()

	if len(doc.Diagnostics) > 0 {
		fmt.Fprintln(out, "\n诊断:")
		for _, d := range doc.Diagnostics {
			fmt.Fprintf(out, "  [%s] %s\n", d.Code, d.Message)
		}
	}
}

func blockPreview(b *ir.Block) string {
	if b.DisplayText != "" {
		return b.DisplayText
	}
	return ir.Preview(b.Text)
}
