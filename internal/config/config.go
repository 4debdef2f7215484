// Package config manages the persisted application configuration.
package config

import "github.com/docforge-io/docstyler/internal/classify"

// Config is the application configuration.
type Config struct {
	// DefaultStyle is the style catalog applied when no --style flag is
	// given: a preset name or a path to a catalog file.
	DefaultStyle string `yaml:"default_style"`

	// DefaultProvider, when non-empty, refines ambiguous groups with
	// this provider on every conversion. Empty disables refinement
	// unless --llm-provider asks for it.
	DefaultProvider string `yaml:"default_provider,omitempty"`

	Providers map[string]Provider `yaml:"providers"`

	// Extractor points at the remote paragraph-extraction service used
	// for shapes the local readers cannot open (legacy .doc).
	Extractor Extractor `yaml:"extractor,omitempty"`

	LogLevel string `yaml:"log_level"`

	// Thresholds override the built-in kind-guessing size cutoffs.
	Thresholds *classify.Thresholds `yaml:"thresholds,omitempty"`
}

// Provider represents an LLM provider configuration.
type Provider struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// Extractor represents the remote extraction service configuration.
type Extractor struct {
	Endpoint       string `yaml:"endpoint,omitempty"`
	APIKey         string `yaml:"api_key,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultStyle: "default",
		Providers: map[string]Provider{
			"openai": {
				APIKey:    "${OPENAI_API_KEY}",
				Model:     "gpt-4o-mini",
				MaxTokens: 1024,
			},
			"anthropic": {
				APIKey:    "${ANTHROPIC_API_KEY}",
				Model:     "claude-sonnet-4-5",
				MaxTokens: 1024,
			},
			"gemini": {
				APIKey:    "${GEMINI_API_KEY}",
				Model:     "gemini-2.5-flash",
				MaxTokens: 1024,
			},
		},
		LogLevel: "info",
	}
}

// GetProvider returns the provider configuration by name.
func (c *Config) GetProvider(name string) (*Provider, bool) {
	p, ok := c.Providers[name]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetDefaultProvider returns the configured refinement provider, if any.
func (c *Config) GetDefaultProvider() (*Provider, bool) {
	if c.DefaultProvider == "" {
		return nil, false
	}
	return c.GetProvider(c.DefaultProvider)
}

// ClassifyThresholds returns the configured cutoffs, or the built-in
// defaults when the config does not set them.
func (c *Config) ClassifyThresholds() classify.Thresholds {
	if c.Thresholds != nil {
		return *c.Thresholds
	}
	return classify.DefaultThresholds()
}
