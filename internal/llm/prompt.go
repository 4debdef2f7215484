package llm

import (
	"fmt"
	"strings"
)

// systemPrompt states the task and the reply protocol. Callers may
// replace it wholesale through ClassifyRequest.Prompt.
func systemPrompt(req ClassifyRequest) string {
	if req.Prompt != "" {
		return req.Prompt
	}

	var sb strings.Builder
	sb.WriteString("You classify format groups of a document for restyling. ")
	sb.WriteString("Each group is a set of paragraphs sharing one formatting signature; ")
	sb.WriteString("the heuristic guess may be wrong. ")
	sb.WriteString("Answer with exactly one line per group in the form signature=kind, no other text. ")
	sb.WriteString("Valid kinds: ")
	sb.WriteString(strings.Join(req.Kinds, ", "))
	sb.WriteString(".")
	return sb.String()
}

// userPrompt lists the groups, one record each.
func userPrompt(req ClassifyRequest) string {
	var sb strings.Builder
	for _, g := range req.Groups {
		fmt.Fprintf(&sb, "signature: %s\nguess: %s\npreview: %s\n\n", g.Signature, g.Guess, g.Preview)
	}
	return sb.String()
}

// parseAssignments extracts signature=kind lines from a model reply.
// Lines that do not split, empty signatures, and kinds outside the
// allowed vocabulary are dropped.
func parseAssignments(text string, kinds []string) map[string]string {
	valid := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		valid[k] = struct{}{}
	}

	assignments := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sig, kind, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		sig = strings.TrimSpace(sig)
		kind = strings.TrimSpace(kind)
		if sig == "" {
			continue
		}
		if _, known := valid[kind]; !known {
			continue
		}
		assignments[sig] = kind
	}
	return assignments
}
