// Package llm abstracts chat completion providers behind a single
// Completer interface so agents stay provider-agnostic.
package llm

import "context"

// Role identifies the author of a chat message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a chat conversation.
type Message struct {
	Role    string
	Content string
}

// Completer produces a text completion for a system prompt and a
// conversation history.
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

// UsageTracker is implemented by completers that count the tokens their
// API calls consume.
type UsageTracker interface {
	Tracker() *TokenTracker
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, system string, messages []Message) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	return f(ctx, system, messages)
}
