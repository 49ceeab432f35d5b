package tutor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
)

// Fixed generation parameters for every engine call.
const (
	MaxTokens   = 800
	Temperature = 0.7
)

// FailureKind classifies a failed completion.
type FailureKind string

const (
	FailureNone        FailureKind = ""
	FailureRateLimit   FailureKind = "rate_limit"
	FailureUnavailable FailureKind = "unavailable"
	FailureAuth        FailureKind = "auth"
	FailureInvalid     FailureKind = "invalid"
	FailureTimeout     FailureKind = "timeout"
	FailureUnknown     FailureKind = "unknown"
)

// Completion is the outcome of one provider call: either text or the error
// that prevented it.
type Completion struct {
	Text string
	Err  error
}

// Failed reports whether the provider call failed.
func (c Completion) Failed() bool { return c.Err != nil }

// Kind classifies the failure.
func (c Completion) Kind() FailureKind {
	var (
		rateLimit   *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
		auth        *llm.ErrAuth
		invalid     *llm.ErrInvalidResponse
	)
	switch {
	case c.Err == nil:
		return FailureNone
	case errors.As(c.Err, &auth):
		return FailureAuth
	case errors.As(c.Err, &rateLimit):
		return FailureRateLimit
	case errors.As(c.Err, &invalid):
		return FailureInvalid
	case errors.As(c.Err, &unavailable):
		return FailureUnavailable
	case errors.Is(c.Err, context.DeadlineExceeded):
		return FailureTimeout
	default:
		return FailureUnknown
	}
}

// Message is the text shown to the student: the reply, or an apology
// carrying the error detail.
func (c Completion) Message() string {
	if c.Err != nil {
		return fmt.Sprintf("Oops, something went wrong on my end 😅 Error: %v", c.Err)
	}
	return c.Text
}

// Gateway is the single seam to the generation provider. It never returns
// an error; failures come back as text.
type Gateway struct {
	provider llm.Provider
	log      *logger.Logger
}

// NewGateway wraps a provider. A nil logger discards output.
func NewGateway(provider llm.Provider, log *logger.Logger) *Gateway {
	return &Gateway{provider: provider, log: logger.OrNop(log)}
}

// Complete sends messages and returns the reply or an apology.
func (g *Gateway) Complete(ctx context.Context, msgs []llm.Message) string {
	return g.complete(ctx, msgs).Message()
}

func (g *Gateway) complete(ctx context.Context, msgs []llm.Message) Completion {
	if g == nil || g.provider == nil {
		return Completion{Err: &llm.ErrProviderUnavailable{Err: errors.New("no provider configured")}}
	}

	start := time.Now()
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    msgs,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	})
	if err != nil {
		c := Completion{Err: err}
		g.log.Warn("generation failed",
			"purpose", llm.PurposeFrom(ctx),
			"kind", string(c.Kind()),
			"latency_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return c
	}
	return Completion{Text: resp.Text}
}
