package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const (
	geminiName         = "gemini"
	geminiDefaultModel = "gemini-2.5-flash"
	geminiKeyEnv       = "GEMINI_API_KEY"
)

// GeminiProvider refines classifications through the Gemini API. The
// client is built per call; the SDK wants a context at construction.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates a Gemini provider. An empty key falls back
// to GEMINI_API_KEY, an empty model to the default.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if apiKey == "" {
		apiKey = os.Getenv(geminiKeyEnv)
	}
	if model == "" {
		model = geminiDefaultModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return geminiName
}

// Validate checks that an API key is configured.
func (p *GeminiProvider) Validate() error {
	if p.apiKey == "" {
		return fmt.Errorf("gemini api key not configured (set %s)", geminiKeyEnv)
	}
	return nil
}

// Classify sends the group records and parses signature=kind lines from
// the reply.
func (p *GeminiProvider) Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt(req), genai.RoleUser),
		Temperature:       genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(userPrompt(req)), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini classification failed: %w", err)
	}

	var usage TokenUsage
	if resp.UsageMetadata != nil {
		usage = TokenUsage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return &ClassifyResult{
		Assignments: parseAssignments(resp.Text(), req.Kinds),
		Usage:       usage,
		Model:       model,
	}, nil
}
