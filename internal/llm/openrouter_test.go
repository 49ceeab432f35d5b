package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "meta-llama/llama-3.1-8b-instruct",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "meta-llama/llama-3.1-8b-instruct" {
			t.Errorf("model = %q", p.ModelID())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "meta-llama/llama-3.1-8b-instruct"})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("model pass-through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "gpt-4o",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// No friendly-name mapping for OpenRouter.
		if p.ModelID() != "gpt-4o" {
			t.Errorf("model = %q, want gpt-4o", p.ModelID())
		}
	})
}

func TestNewGroqProvider(t *testing.T) {
	t.Run("default model", func(t *testing.T) {
		p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "llama-3.1-8b-instant" {
			t.Errorf("model = %q, want llama-3.1-8b-instant", p.ModelID())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewGroqProvider(GroqConfig{}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("custom base URL is used", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			if got := r.Header.Get("Authorization"); got != "Bearer gsk-test" {
				t.Errorf("authorization = %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(chatCompletionBody("Hey there! 👋"))
		}))
		defer server.Close()

		p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test", BaseURL: server.URL + "/openai/v1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp, err := p.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "hi"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "Hey there! 👋" {
			t.Fatalf("unexpected text %q", resp.Text)
		}
		if hits != 1 {
			t.Fatalf("expected 1 request, got %d", hits)
		}
	})
}
