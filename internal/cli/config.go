package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/docforge-io/docstyler/internal/config"
	"github.com/docforge-io/docstyler/internal/parser/remote"
	"github.com/docforge-io/docstyler/internal/style"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "配置管理",
	Long: `管理 docstyler 配置。

配置文件位置: ~/.docstyler/config.yaml

子命令:
  show    显示当前配置
  init    生成默认配置文件
  set     修改配置项
  path    显示配置文件路径`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示当前配置",
	Long: `显示当前生效的配置。

配置文件中的 ${VAR} 占位符按环境变量展开后显示。
没有配置文件时显示默认值。`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "生成默认配置文件",
	Long: `在 ~/.docstyler/config.yaml 生成默认配置文件。

配置文件已存在时报错，使用 --force 覆盖。`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "修改配置项",
	Long: `修改配置项并保存。

支持的键:
  default_style       默认样式 (default, academic, official 或 YAML 文件路径)
  default_provider    默认分类服务 (openai, anthropic, gemini, 留空禁用精化)
  log_level           日志级别 (debug, info, warn, error, quiet)
  extractor.endpoint  远程解析服务地址

示例:
  docstyler config set default_style academic
  docstyler config set default_provider anthropic
  docstyler config set log_level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "显示配置文件路径",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := config.NewLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "错误: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "覆盖已存在的配置文件")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("配置加载器初始化失败: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}

	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "配置文件: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "配置文件: (使用默认值)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("配置输出失败: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	fmt.Fprintln(cmd.OutOrStdout(), "环境变量:")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	envVars := []struct {
		key   string
		desc  string
		value string
	}{
		{"DOCSTYLER_LOG_LEVEL", "日志级别", os.Getenv("DOCSTYLER_LOG_LEVEL")},
		{"DOCSTYLER_LLM", "启用 LLM 精化", os.Getenv("DOCSTYLER_LLM")},
		{remote.EndpointEnv, "远程解析服务地址", os.Getenv(remote.EndpointEnv)},
		{"OPENAI_API_KEY", "OpenAI API 密钥", maskAPIKey(os.Getenv("OPENAI_API_KEY"))},
		{"ANTHROPIC_API_KEY", "Anthropic API 密钥", maskAPIKey(os.Getenv("ANTHROPIC_API_KEY"))},
		{"GEMINI_API_KEY", "Gemini API 密钥", maskAPIKey(os.Getenv("GEMINI_API_KEY"))},
	}

	for _, ev := range envVars {
		status := "(未设置)"
		if ev.value != "" {
			status = ev.value
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("配置加载器初始化失败: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("配置文件已存在: %s\n使用 --force 覆盖", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("配置文件生成失败: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "配置文件已生成: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("配置加载器初始化失败: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}

	switch key {
	case "default_style":
		if _, err := style.ResolveFlag(value); err != nil {
			return fmt.Errorf("无效的样式: %w", err)
		}
		cfg.DefaultStyle = value

	case "default_provider":
		valid := []string{"openai", "anthropic", "gemini"}
		if value != "" && !contains(valid, value) {
			return fmt.Errorf("无效的分类服务: %s (支持: %s)", value, strings.Join(valid, ", "))
		}
		cfg.DefaultProvider = value

	case "log_level":
		valid := []string{"debug", "info", "warn", "error", "quiet"}
		if !contains(valid, value) {
			return fmt.Errorf("无效的日志级别: %s (支持: %s)", value, strings.Join(valid, ", "))
		}
		cfg.LogLevel = value

	case "extractor.endpoint":
		cfg.Extractor.Endpoint = value

	default:
		return fmt.Errorf("未知的配置键: %s\n支持的键: default_style, default_provider, log_level, extractor.endpoint", key)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("配置保存失败: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "配置已修改: %s = %s\n", key, value)
	return nil
}

func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
