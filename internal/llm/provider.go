// Package llm provides the model provider interface and registry used to
// refine heuristic group classifications.
package llm

import "context"

// Provider is the interface that all model providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Classify assigns a semantic kind to each offered format group.
	Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResult, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// GroupSample is one format group offered for refinement: its signature
// key, a short content preview, and the heuristic guess.
type GroupSample struct {
	Signature string `json:"signature"`
	Preview   string `json:"preview"`
	Guess     string `json:"guess"`
}

// ClassifyRequest contains the groups to refine and the kind vocabulary
// the model may answer with.
type ClassifyRequest struct {
	Groups      []GroupSample `json:"groups"`
	Kinds       []string      `json:"kinds"`
	Model       string        `json:"model,omitempty"`       // provider default when empty
	MaxTokens   int           `json:"max_tokens,omitempty"`  // maximum tokens for response
	Temperature float64       `json:"temperature,omitempty"` // sampling temperature
	Prompt      string        `json:"prompt,omitempty"`      // custom system prompt
}

// ClassifyResult contains the refined assignments. Signatures the model
// did not answer for, or answered with an unknown kind, are absent.
type ClassifyResult struct {
	Assignments map[string]string `json:"assignments"` // signature -> kind name
	Usage       TokenUsage        `json:"usage"`
	Model       string            `json:"model"`
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// DefaultClassifyRequest returns a request with classification defaults:
// a small response budget and deterministic sampling.
func DefaultClassifyRequest(groups []GroupSample, kinds []string) ClassifyRequest {
	return ClassifyRequest{
		Groups:      groups,
		Kinds:       kinds,
		MaxTokens:   1024,
		Temperature: 0.0,
	}
}
