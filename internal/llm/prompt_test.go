package llm

import (
	"strings"
	"testing"
)

func TestParseAssignments(t *testing.T) {
	kinds := []string{"heading1", "body", "caption"}
	reply := "宋体|12.0|||left=body\n" +
		"黑体|16.0|B||left=heading1\n" +
		"宋体|9.0|||center=caption\n"

	got := parseAssignments(reply, kinds)

	if len(got) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(got))
	}
	if got["宋体|12.0|||left"] != "body" {
		t.Errorf("expected body, got %q", got["宋体|12.0|||left"])
	}
	if got["黑体|16.0|B||left"] != "heading1" {
		t.Errorf("expected heading1, got %q", got["黑体|16.0|B||left"])
	}
}

func TestParseAssignments_DropsInvalid(t *testing.T) {
	kinds := []string{"body"}

	tests := []struct {
		name  string
		reply string
	}{
		{"unknown kind", "sig=banner"},
		{"no separator", "sig body"},
		{"empty signature", "=body"},
		{"chatter", "Here are the classifications:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseAssignments(tt.reply, kinds); len(got) != 0 {
				t.Errorf("expected no assignments, got %v", got)
			}
		})
	}
}

func TestParseAssignments_TrimsAndSkipsNoise(t *testing.T) {
	kinds := []string{"body", "quote"}
	reply := "\nSure, here you go:\n\n  sig1 = body  \nsig2=quote\n\nDone.\n"

	got := parseAssignments(reply, kinds)

	if len(got) != 2 {
		t.Fatalf("expected 2 assignments, got %d: %v", len(got), got)
	}
	if got["sig1"] != "body" {
		t.Errorf("expected trimmed assignment, got %v", got)
	}
	if got["sig2"] != "quote" {
		t.Errorf("expected quote, got %v", got)
	}
}

func TestSystemPrompt(t *testing.T) {
	req := ClassifyRequest{Kinds: []string{"heading1", "body"}}

	got := systemPrompt(req)
	if !strings.Contains(got, "signature=kind") {
		t.Errorf("expected protocol statement, got %q", got)
	}
	if !strings.Contains(got, "heading1, body") {
		t.Errorf("expected kind vocabulary, got %q", got)
	}
}

func TestSystemPrompt_CustomOverride(t *testing.T) {
	req := ClassifyRequest{Prompt: "custom instructions"}

	if got := systemPrompt(req); got != "custom instructions" {
		t.Errorf("expected custom prompt, got %q", got)
	}
}

func TestUserPrompt(t *testing.T) {
	req := ClassifyRequest{
		Groups: []GroupSample{
			{Signature: "黑体|16.0|B||left", Preview: "第一章 绪论", Guess: "heading1"},
			{Signature: "宋体|12.0|||left", Preview: "研究背景如下。", Guess: "body"},
		},
	}

	got := userPrompt(req)
	for _, want := range []string{"signature: 黑体|16.0|B||left", "guess: heading1", "preview: 研究背景如下。"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in prompt, got %q", want, got)
		}
	}
}
