package llm

import (
	"context"
	"errors"
	"fmt"
)

// Roles accepted in a Message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prior conversational turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer sends a system instruction plus the conversation to a
// chat-completion model and returns the first choice's text.
type Completer interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
	Provider() string
}

var (
	// ErrNotConfigured means the provider has no credentials.
	ErrNotConfigured = errors.New("llm: provider is not configured")
	// ErrEmptyCompletion means the provider answered 2xx without any content.
	ErrEmptyCompletion = errors.New("llm: empty completion")
)

// StatusError is a non-2xx answer from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: provider returned status %d: %s", e.StatusCode, e.Body)
}

// StatusCode returns the provider status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
