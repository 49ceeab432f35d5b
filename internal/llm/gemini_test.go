package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "what is osmosis?"},
		{Role: RoleAssistant, Content: "water moving across a membrane"},
	})

	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" {
		t.Errorf("role[0] = %q, want user", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("role[1] = %q, want model", contents[1].Role)
	}
	if contents[1].Parts[0].Text != "water moving across a membrane" {
		t.Errorf("unexpected text %q", contents[1].Parts[0].Text)
	}
}
