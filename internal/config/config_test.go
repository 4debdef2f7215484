package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docforge-io/docstyler/internal/classify"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultStyle != "default" {
		t.Errorf("expected default style 'default', got %s", cfg.DefaultStyle)
	}
	if cfg.DefaultProvider != "" {
		t.Errorf("expected refinement disabled by default, got %s", cfg.DefaultProvider)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.LogLevel)
	}

	if len(cfg.Providers) != 3 {
		t.Errorf("expected 3 providers, got %d", len(cfg.Providers))
	}

	openai, ok := cfg.Providers["openai"]
	if !ok {
		t.Error("expected 'openai' provider in config")
	}
	if openai.Model != "gpt-4o-mini" {
		t.Errorf("expected OpenAI model 'gpt-4o-mini', got %s", openai.Model)
	}

	anthropic, ok := cfg.Providers["anthropic"]
	if !ok {
		t.Error("expected 'anthropic' provider in config")
	}
	if anthropic.APIKey != "${ANTHROPIC_API_KEY}" {
		t.Errorf("expected env reference for Anthropic key, got %s", anthropic.APIKey)
	}
}

func TestConfig_GetProvider(t *testing.T) {
	cfg := DefaultConfig()

	p, ok := cfg.GetProvider("gemini")
	if !ok {
		t.Fatal("expected to find 'gemini' provider")
	}
	if p.Model != "gemini-2.5-flash" {
		t.Errorf("expected model 'gemini-2.5-flash', got %s", p.Model)
	}

	_, ok = cfg.GetProvider("nonexistent")
	if ok {
		t.Error("expected not to find 'nonexistent' provider")
	}
}

func TestConfig_GetDefaultProvider(t *testing.T) {
	cfg := DefaultConfig()

	if _, ok := cfg.GetDefaultProvider(); ok {
		t.Error("expected no default provider out of the box")
	}

	cfg.DefaultProvider = "openai"
	p, ok := cfg.GetDefaultProvider()
	if !ok {
		t.Fatal("expected to find default provider")
	}
	if p.Model != "gpt-4o-mini" {
		t.Errorf("expected default provider model 'gpt-4o-mini', got %s", p.Model)
	}
}

func TestConfig_ClassifyThresholds(t *testing.T) {
	cfg := DefaultConfig()

	got := cfg.ClassifyThresholds()
	if got != classify.DefaultThresholds() {
		t.Errorf("expected built-in thresholds, got %+v", got)
	}

	cfg.Thresholds = &classify.Thresholds{Heading1MinSize: 18}
	if got := cfg.ClassifyThresholds(); got.Heading1MinSize != 18 {
		t.Errorf("expected configured thresholds, got %+v", got)
	}
}

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg := DefaultConfig()
	cfg.DefaultStyle = "academic"
	cfg.Extractor.Endpoint = "https://extract.example.com/v1"
	cfg.Thresholds = &classify.Thresholds{Heading1MinSize: 16, CaptionMaxSize: 9}

	err := loader.Save(cfg)
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after save")
	}

	loaded, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.DefaultStyle != "academic" {
		t.Errorf("expected default style 'academic', got %s", loaded.DefaultStyle)
	}
	if loaded.Extractor.Endpoint != "https://extract.example.com/v1" {
		t.Errorf("expected extractor endpoint to round-trip, got %s", loaded.Extractor.Endpoint)
	}
	if loaded.Thresholds == nil || loaded.Thresholds.Heading1MinSize != 16 {
		t.Errorf("expected thresholds to round-trip, got %+v", loaded.Thresholds)
	}
}

func TestLoader_LoadNonExistent(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent", "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}

	if cfg.DefaultStyle != "default" {
		t.Errorf("expected default style 'default', got %s", cfg.DefaultStyle)
	}

	// the default key placeholders expand even without a file
	p, ok := cfg.GetProvider("anthropic")
	if !ok {
		t.Fatal("expected 'anthropic' provider in defaults")
	}
	if p.APIKey != "sk-ant-env" {
		t.Errorf("expected expanded key from environment, got %s", p.APIKey)
	}
}

func TestLoader_ExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_API_KEY", "test-key-12345")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `default_style: default
providers:
  test:
    api_key: ${TEST_API_KEY}
    model: test-model
    max_tokens: 1000
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	testProvider, ok := cfg.GetProvider("test")
	if !ok {
		t.Fatal("expected to find 'test' provider")
	}

	if testProvider.APIKey != "test-key-12345" {
		t.Errorf("expected API key 'test-key-12345', got %s", testProvider.APIKey)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
}

func TestExpandEnvVars_UnsetVar(t *testing.T) {
	os.Unsetenv("UNSET_VAR_FOR_TEST")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `providers:
  test:
    api_key: ${UNSET_VAR_FOR_TEST}
    model: test-model
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	testProvider, ok := cfg.GetProvider("test")
	if !ok {
		t.Fatal("expected to find 'test' provider")
	}

	if testProvider.APIKey != "" {
		t.Errorf("expected empty API key for unset env var, got %s", testProvider.APIKey)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	if v := GetEnvOrDefault("TEST_VAR", "default"); v != "test-value" {
		t.Errorf("expected 'test-value', got %s", v)
	}

	if v := GetEnvOrDefault("NONEXISTENT_VAR", "default"); v != "default" {
		t.Errorf("expected 'default', got %s", v)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"invalid", false},
	}

	for _, tc := range tests {
		t.Setenv("TEST_BOOL", tc.value)
		if got := GetEnvBool("TEST_BOOL"); got != tc.expected {
			t.Errorf("GetEnvBool(%q): expected %v, got %v", tc.value, tc.expected, got)
		}
	}
}

func TestNewLoader(t *testing.T) {
	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}

	path := loader.ConfigPath()
	if path == "" {
		t.Error("expected non-empty config path")
	}

	if filepath.Base(path) != ConfigFileName {
		t.Errorf("expected config file name %s, got %s", ConfigFileName, filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ConfigDirName {
		t.Errorf("expected config directory %s, got %s", ConfigDirName, filepath.Dir(path))
	}
}

func TestLoader_Init(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	err := loader.Init()
	if err != nil {
		t.Fatalf("failed to init config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after init")
	}

	err = loader.Init()
	if err == nil {
		t.Error("expected error when initializing existing config")
	}
}

func TestLoader_LoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := "{{{{invalid yaml"
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)
	_, err := loader.Load()
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}
