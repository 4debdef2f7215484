package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docforge-io/docstyler/internal/config"
	"github.com/docforge-io/docstyler/internal/llm"
)

type providerInfo struct {
	Name         string
	DefaultModel string
	EnvKey       string
	Description  string
}

var providers = []providerInfo{
	{
		Name:         "openai",
		DefaultModel: "gpt-4o-mini",
		EnvKey:       "OPENAI_API_KEY",
		Description:  "OpenAI GPT API",
	},
	{
		Name:         "anthropic",
		DefaultModel: "claude-sonnet-4-5",
		EnvKey:       "ANTHROPIC_API_KEY",
		Description:  "Anthropic Claude API",
	},
	{
		Name:         "gemini",
		DefaultModel: "gemini-2.5-flash",
		EnvKey:       "GEMINI_API_KEY",
		Description:  "Google Gemini API",
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "列出可用的分类服务",
	Long: `列出可用于精化低置信度分组的 LLM 服务。

各服务需要在对应的环境变量或配置文件中设置 API 密钥。
convert 不指定 --llm-provider 时使用配置中的 default_provider，
两者都未设置则跳过精化，保留启发式推断的类别。

示例:
  docstyler convert thesis.docx --llm-provider anthropic
  docstyler convert thesis.docx --llm-model gpt-4o`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg := buildRegistry(cfg)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "服务\t默认模型\t环境变量\t状态\t说明")
	fmt.Fprintln(w, "----\t--------\t--------\t----\t----")

	for _, p := range providers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.DefaultModel, p.EnvKey, checkProviderStatus(reg, p.Name), p.Description)
	}
	return nil
}

// checkProviderStatus reports whether the registered provider has a key.
func checkProviderStatus(reg *llm.Registry, name string) string {
	p, err := reg.Get(name)
	if err != nil || p.Validate() != nil {
		return "✗ 未配置"
	}
	return "✓ 已配置"
}

// buildRegistry constructs one provider per configured entry. Unknown
// names in the configuration are skipped.
func buildRegistry(cfg *config.Config) *llm.Registry {
	reg := llm.NewRegistry()
	for name, pc := range cfg.Providers {
		if p := newProvider(name, pc.APIKey, pc.Model); p != nil {
			reg.Register(p)
		}
	}
	return reg
}

// newProvider constructs a provider by name, nil for unknown names.
// Empty keys fall back to the provider's environment variable.
func newProvider(name, apiKey, model string) llm.Provider {
	switch name {
	case "openai":
		return llm.NewOpenAIProvider(apiKey, model)
	case "anthropic":
		return llm.NewAnthropicProvider(apiKey, model)
	case "gemini":
		return llm.NewGeminiProvider(apiKey, model)
	}
	return nil
}

// detectProviderFromModel guesses the provider from a model name prefix.
// Empty and unrecognized names return "".
func detectProviderFromModel(model string) string {
	m := strings.ToLower(model)
	switch {
	case m == "":
		return ""
	case strings.HasPrefix(m, "claude"):
		return "anthropic"
	case strings.HasPrefix(m, "gpt"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"):
		return "openai"
	case strings.HasPrefix(m, "gemini"):
		return "gemini"
	}
	return ""
}

// buildProvider constructs the named classification provider. API key
// and default model come from the configuration when the entry exists;
// a non-empty model overrides the configured one.
func buildProvider(cfg *config.Config, name, model string) (llm.Provider, error) {
	var key string
	if pc, ok := cfg.GetProvider(name); ok {
		key = pc.APIKey
		if model == "" {
			model = pc.Model
		}
	}
	if p := newProvider(name, key, model); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("未知的分类服务: %s (支持: openai, anthropic, gemini)", name)
}
