// Package cli implements the docstyler command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/docforge-io/docstyler/internal/config"
	"github.com/docforge-io/docstyler/internal/logging"
)

var version = "dev"

// SetVersion stamps the version reported by --version and the version
// command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "docstyler [file]",
	Short: "文档智能排版工具",
	Long: `docstyler 将 LaTeX 或 Word 文档按样式目录重新排版。

输入文档被解析为有序的结构化块，段落按格式特征分组并推断类别，
再根据样式目录逐块生成排版指令。

直接传入文件等同于 convert 子命令:
  docstyler paper.tex
  docstyler convert paper.tex -o styled.md`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "docstyler %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the user configuration; a missing config file yields
// the defaults.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("配置加载器初始化失败: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	return cfg, nil
}

// buildLogger builds the command logger. --verbose outranks --quiet,
// which outranks DOCSTYLER_LOG_LEVEL and the configured level.
func buildLogger(cmd *cobra.Command, cfg *config.Config, verbose, quiet bool) zerolog.Logger {
	level := config.GetEnvOrDefault("DOCSTYLER_LOG_LEVEL", cfg.LogLevel)
	if quiet {
		level = "quiet"
	}
	if verbose {
		level = "debug"
	}
	return logging.New(level, cmd.ErrOrStderr())
}

// writeOutput prints to stdout when path is empty, otherwise writes the
// file.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("输出文件保存失败: %w", err)
	}
	return nil
}
