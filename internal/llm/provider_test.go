package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/studybuddy/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "Q1: What is a cell?", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "second"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != "Q1: What is a cell?" {
		t.Fatalf("unexpected text %q", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != "second" {
		t.Fatalf("expected 'second', got %q", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockText("hi")

	req := Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "persona"},
			{Role: RoleUser, Content: "hello"},
		},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	last, ok := mock.LastCall()
	if !ok {
		t.Fatal("expected a recorded call")
	}
	if last.Messages[0].Content != "persona" {
		t.Fatalf("expected first message 'persona', got %q", last.Messages[0].Content)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "quiz")
	if p := PurposeFrom(ctx); p != "quiz" {
		t.Fatalf("expected 'quiz', got %q", p)
	}
}

func TestSplitSystem(t *testing.T) {
	req := Request{
		System: "lead",
		Messages: []Message{
			{Role: RoleSystem, Content: "persona"},
			{Role: RoleSystem, Content: "notes"},
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
		},
	}

	system, dialogue := splitSystem(req)
	if len(system) != 3 || system[0] != "lead" || system[1] != "persona" || system[2] != "notes" {
		t.Fatalf("unexpected system parts %q", system)
	}
	if len(dialogue) != 2 || dialogue[0].Role != RoleUser || dialogue[1].Role != RoleAssistant {
		t.Fatalf("unexpected dialogue %+v", dialogue)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"groq without key", Config{Provider: "groq"}, true},
		{"groq with key", Config{Provider: "groq", Groq: GroqConfig{APIKey: "gsk-test"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "or-test"}}, false},
		{"mock is not selectable", Config{Provider: "mock"}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STUDYBUDDY_LLM_PROVIDER", "groq")
	t.Setenv("STUDYBUDDY_GROQ_API_KEY", "gsk-env")
	t.Setenv("STUDYBUDDY_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "groq" {
		t.Fatalf("provider = %q, want groq", cfg.Provider)
	}
	if cfg.Groq.APIKey != "gsk-env" {
		t.Fatalf("groq key = %q", cfg.Groq.APIKey)
	}
	if cfg.Groq.Model != "llama-3.1-8b-instant" {
		t.Fatalf("groq model = %q, want default", cfg.Groq.Model)
	}
	if cfg.Timeout != 45*time.Second {
		t.Fatalf("timeout = %s, want 45s", cfg.Timeout)
	}
}

func TestDiscoverConfig_PrefersGroq(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk")
	t.Setenv("OPENAI_API_KEY", "sk")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a discovered config")
	}
	if cfg.Provider != "groq" || cfg.Groq.APIKey != "gsk" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestNewProvider_MockNotSelectable(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err == nil {
		t.Fatalf("expected an error, got provider %T", p)
	}
	if !strings.Contains(err.Error(), `unknown LLM provider: "mock"`) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "groq"}, nil, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

type recordingEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsEvent(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{Text: "answer", Usage: Usage{InputTokens: 7, OutputTokens: 3}})
	p := WithLogging(mock, "groq", repo, nil)

	ctx := WithPurpose(context.Background(), "ask")
	resp, err := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "what is ATP?"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "answer" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Provider != "groq" || ev.Purpose != "ask" || !ev.Success {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.InputTokens != 7 || ev.OutputTokens != 3 {
		t.Fatalf("unexpected token counts %+v", ev)
	}
	if ev.ResponseBody != "answer" {
		t.Fatalf("response body = %q", ev.ResponseBody)
	}
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingEventRepo{err: errors.New("disk full")}
	mock := NewMockText("ok")
	p := WithLogging(mock, "mock", repo, nil)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrAuth{Err: errors.New("bad key")}})
	p := WithLogging(mock, "openai", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("expected a failed event, got %+v", repo.events)
	}
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_BoundsRequest(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if p.ModelID() != "blocking" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

func TestTimeout_ZeroIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatalf("expected the provider unchanged, got %T", p)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("llama-3.1-8b-instant")
	if c == nil {
		t.Fatal("expected pricing for the default groq model")
	}
	if got := c.Cost(1_000_000, 0); got != c.InputPerMTok {
		t.Fatalf("cost = %v, want %v", got, c.InputPerMTok)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
