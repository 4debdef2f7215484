package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/docforge-io/docstyler/internal/config"
	"github.com/docforge-io/docstyler/internal/convert"
	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/llm"
	"github.com/docforge-io/docstyler/internal/parser"
	"github.com/docforge-io/docstyler/internal/parser/remote"
	"github.com/docforge-io/docstyler/internal/render"
	"github.com/docforge-io/docstyler/internal/style"
)

var (
	convertOutput      string
	convertFormat      string
	convertStyle       string
	convertTo          string
	convertOverrides   []string
	convertOnly        []string
	convertProvider    string
	convertModel       string
	convertExtractImgs bool
	convertImageDir    string
	convertVerbose     bool
	convertQuiet       bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "按样式目录重新排版文档",
	Long: `将 LaTeX 或 Word 文档重新排版为目标样式。

输入格式默认自动检测。文档解析为结构化块后，按样式目录逐块
生成排版指令；--override 可改写单个块或整组段落的类别，
--only 只重排选中的部分，其余块按正文样式原样输出。

环境变量:
  DOCSTYLER_LOG_LEVEL        日志级别
  DOCSTYLER_LLM              设为 1 时启用 LLM 精化
  DOCSTYLER_REMOTE_ENDPOINT  旧版二进制文档的远程解析服务

示例:
  docstyler convert paper.tex
  docstyler convert thesis.docx -o styled.md --style academic
  docstyler convert report.docx --override 3=heading2
  docstyler convert thesis.docx --llm-provider anthropic
  docstyler convert notes.tex --to json -o blocks.json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "输出文件路径 (默认: stdout)")
	convertCmd.Flags().StringVar(&convertFormat, "format", "auto", "输入格式 (auto, latex, docx, doc)")
	convertCmd.Flags().StringVar(&convertStyle, "style", "", "样式预设或 YAML 文件路径")
	convertCmd.Flags().StringVar(&convertTo, "to", "markdown", "输出形式 (markdown, json)")
	convertCmd.Flags().StringArrayVar(&convertOverrides, "override", nil, "改写类别, 格式为 块序号或特征串=类别 (可重复)")
	convertCmd.Flags().StringArrayVar(&convertOnly, "only", nil, "只重排指定的块序号或特征串 (可重复)")
	convertCmd.Flags().StringVar(&convertProvider, "llm-provider", "", "用 LLM 精化低置信度分组 (openai, anthropic, gemini)")
	convertCmd.Flags().StringVar(&convertModel, "llm-model", "", "LLM 模型名称")
	convertCmd.Flags().BoolVar(&convertExtractImgs, "extract-images", false, "提取文档中的图片")
	convertCmd.Flags().StringVar(&convertImageDir, "image-dir", "./images", "图片保存目录")
	convertCmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "显示详细进度")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "安静模式")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := buildLogger(cmd, cfg, convertVerbose, convertQuiet)

	format, err := parser.ParseFormat(convertFormat)
	if err != nil {
		return err
	}

	styleName := convertStyle
	if styleName == "" {
		styleName = cfg.DefaultStyle
	}
	catalog, err := style.ResolveFlag(styleName)
	if err != nil {
		return err
	}

	overrides := ir.NewOverrideMap()
	for _, spec := range convertOverrides {
		if err := overrides.Apply(spec); err != nil {
			return err
		}
	}

	provider, err := resolveProvider(cfg, &log)
	if err != nil {
		return err
	}

	opts := convert.Options{
		Format:           format,
		Catalog:          catalog,
		Overrides:        overrides,
		RestyleSelection: convertOnly,
		Provider:         provider,
		Thresholds:       cfg.Thresholds,
		ExtractImages:    convertExtractImgs,
		ImageDir:         convertImageDir,
		Extractor:        extractorConfig(cfg),
		Logger:           &log,
	}
	if convertVerbose && !convertQuiet {
		opts.Progress = func(percent int, message string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%3d%%] %s\n", percent, message)
		}
	}
	pipeline := convert.New(opts)

	switch convertTo {
	case "markdown":
		w := &render.MarkdownWriter{}
		if _, err := pipeline.Convert(cmd.Context(), inputPath, w); err != nil {
			return fmt.Errorf("转换失败: %w", err)
		}
		if err := writeOutput(cmd, convertOutput, w.String()); err != nil {
			return err
		}

	case "json":
		rec := &render.Recorder{}
		res, err := pipeline.Convert(cmd.Context(), inputPath, rec)
		if err != nil {
			return fmt.Errorf("转换失败: %w", err)
		}
		data, err := json.MarshalIndent(convertReport{
			Format:       res.Format.String(),
			Instructions: rec.Instructions,
			Diagnostics:  res.Document.Diagnostics,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("JSON 输出失败: %w", err)
		}
		if err := writeOutput(cmd, convertOutput, string(data)); err != nil {
			return err
		}

	default:
		return fmt.Errorf("不支持的输出形式: %s (支持: markdown, json)", convertTo)
	}

	if convertOutput != "" && !convertQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "转换完成: %s\n", convertOutput)
	}
	return nil
}

// convertReport is the --to json payload: the rendered instruction
// stream plus whatever diagnostics parsing accumulated.
type convertReport struct {
	Format       string               `json:"format"`
	Instructions []render.Instruction `json:"instructions"`
	Diagnostics  []ir.Diagnostic      `json:"diagnostics,omitempty"`
}

// resolveProvider picks the classification provider: the --llm-provider
// flag, then model-name detection, then the configured default. The
// DOCSTYLER_LLM env var enables refinement for a session when nothing
// else names a provider. A broken explicit choice errors; a broken
// default logs and degrades to the heuristic kinds.
func resolveProvider(cfg *config.Config, log *zerolog.Logger) (llm.Provider, error) {
	name := convertProvider
	explicit := convertProvider != "" || convertModel != ""
	if name == "" {
		name = detectProviderFromModel(convertModel)
	}
	if name == "" {
		name = cfg.DefaultProvider
	}
	if name == "" && config.GetEnvBool("DOCSTYLER_LLM") {
		name = "anthropic"
	}
	if name == "" {
		return nil, nil
	}

	provider, err := buildProvider(cfg, name, convertModel)
	if err != nil {
		return nil, err
	}
	if err := provider.Validate(); err != nil {
		if explicit {
			return nil, fmt.Errorf("分类服务 %s 不可用: %w", name, err)
		}
		log.Warn().Str("provider", name).Err(err).
			Msg("default provider unavailable, skipping refinement")
		return nil, nil
	}
	return provider, nil
}

// extractorConfig maps the configured extraction service settings onto
// the remote parser.
func extractorConfig(cfg *config.Config) remote.Config {
	return remote.Config{
		Endpoint: cfg.Extractor.Endpoint,
		APIKey:   cfg.Extractor.APIKey,
		Timeout:  time.Duration(cfg.Extractor.TimeoutSeconds) * time.Second,
	}
}
