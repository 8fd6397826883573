package llm

import "context"

// Message roles as the model API expects them
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn of conversation history passed to the model
type Message struct {
	Role    string
	Content string
}

// Provider defines the interface for external text-completion services. The
// assistant treats the model as an opaque function from conversation history
// plus a new message to response text.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// IsConfigured checks if the provider has valid credentials
	IsConfigured() bool

	// Chat submits the bounded history and the new message and returns the
	// model's raw text response.
	Chat(ctx context.Context, history []Message, message string) (string, error)
}
