package ai

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const DefaultTemperature = 0.7

// Message is one entry of a prompt sent to a model provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider performs a blocking chat completion.
type Provider interface {
	Name() string
	Chat(ctx context.Context, messages []Message) (string, error)
}

// ProviderOptions are fixed when a provider is built at startup.
type ProviderOptions struct {
	Model       string
	Temperature float64
}
