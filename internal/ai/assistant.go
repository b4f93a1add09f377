package ai

import "context"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation transcript.
type Turn struct {
	Role    Role
	Content string
}

// Generator is the provider-neutral boundary to a language-model backend. The
// system instruction is delivered ahead of the history so the model sees it
// before any conversation content.
type Generator interface {
	GenerateReply(ctx context.Context, system string, history []Turn) (string, error)
	Model() string
}
