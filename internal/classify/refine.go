package classify

import (
	"context"
	"fmt"

	"github.com/docforge-io/docstyler/internal/ir"
	"github.com/docforge-io/docstyler/internal/llm"
)

// RefineGroups asks a model provider to re-guess the kinds of ambiguous
// groups. A valid answer replaces the heuristic guess and clears the
// ambiguity flag; missing answers, unknown kind names and transport
// failures all leave the heuristic result in place. Returns nil when no
// group needs refinement.
func RefineGroups(ctx context.Context, provider llm.Provider, groups []Group) (*llm.ClassifyResult, error) {
	var samples []llm.GroupSample
	for _, g := range groups {
		if !g.Ambiguous {
			continue
		}
		samples = append(samples, llm.GroupSample{
			Signature: g.Signature,
			Preview:   g.Sample,
			Guess:     string(g.GuessedKind),
		})
	}
	if len(samples) == 0 {
		return nil, nil
	}

	all := ir.Kinds()
	kinds := make([]string, len(all))
	for i, k := range all {
		kinds[i] = string(k)
	}

	res, err := provider.Classify(ctx, llm.DefaultClassifyRequest(samples, kinds))
	if err != nil {
		return nil, fmt.Errorf("failed to refine groups: %w", err)
	}

	for i := range groups {
		name, ok := res.Assignments[groups[i].Signature]
		if !ok {
			continue
		}
		kind, err := ir.ParseKind(name)
		if err != nil {
			continue
		}
		groups[i].GuessedKind = kind
		groups[i].Ambiguous = false
	}
	return res, nil
}
