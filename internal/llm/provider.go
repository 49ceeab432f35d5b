package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with an ordered message list and receive text.
type Provider interface {
	// Generate sends the request to the LLM and returns its text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is an optional leading system prompt. Providers merge it with
	// any RoleSystem entries in Messages.
	System string

	// Messages is the ordered conversation. System messages may appear
	// anywhere; providers without interleaved system support fold them into
	// their system instruction in order.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Text is the generated reply.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// splitSystem separates system content from the dialogue for providers that
// take a single system instruction. System parts keep their original order.
func splitSystem(req Request) (system []string, dialogue []Message) {
	if req.System != "" {
		system = append(system, req.System)
	}
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		dialogue = append(dialogue, m)
	}
	return system, dialogue
}
