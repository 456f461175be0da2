// Package provider wraps the external AI services: embedding generation
// and chat completion.
package provider

import "context"

// Message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat message in a completion request.
type Message struct {
	role    string
	content string
}

// NewMessage creates a Message.
func NewMessage(role, content string) Message {
	return Message{role: role, content: content}
}

// Role returns the message role.
func (m Message) Role() string { return m.role }

// Content returns the message content.
func (m Message) Content() string { return m.content }

// CompletionRequest describes one chat completion.
type CompletionRequest struct {
	messages    []Message
	temperature float32
	maxTokens   int
	jsonMode    bool
}

// NewCompletionRequest creates a CompletionRequest.
func NewCompletionRequest(messages []Message) CompletionRequest {
	return CompletionRequest{messages: messages}
}

// WithTemperature sets the sampling temperature.
func (r CompletionRequest) WithTemperature(t float32) CompletionRequest {
	r.temperature = t
	return r
}

// WithMaxTokens caps the completion length.
func (r CompletionRequest) WithMaxTokens(n int) CompletionRequest {
	r.maxTokens = n
	return r
}

// WithJSONMode requests a JSON-object response format.
func (r CompletionRequest) WithJSONMode() CompletionRequest {
	r.jsonMode = true
	return r
}

// Messages returns the request messages.
func (r CompletionRequest) Messages() []Message { return r.messages }

// Temperature returns the sampling temperature.
func (r CompletionRequest) Temperature() float32 { return r.temperature }

// MaxTokens returns the completion length cap (0 = provider default).
func (r CompletionRequest) MaxTokens() int { return r.maxTokens }

// JSONMode returns whether a JSON-object response was requested.
func (r CompletionRequest) JSONMode() bool { return r.jsonMode }

// Embedder converts text into a fixed-dimension vector. Provider errors
// are propagated unmodified; retry policy belongs to the caller.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// TextGenerator produces a chat completion for a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
