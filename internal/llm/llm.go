package llm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles a message may carry. These are internal labels; each client maps them
// to whatever its provider expects for user-authored and model-authored turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single turn of a conversation.
type Message struct {
	// ID of this message, generated client-side.
	ID string `json:"id"`
	// Role is one of RoleUser or RoleAssistant, fixed at creation.
	Role string `json:"role"`
	// Content of the message.
	Content string `json:"content"`
	// Timestamp is the creation time, RFC-3339 UTC.
	Timestamp string `json:"timestamp"`
}

// NewMessage instantiates and returns a new message.
func NewMessage(role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// CreateTextGenerationRequest carries the full ordered history of a chat,
// including the newest user message, along with a creativity scalar in [0, 1]
// that maps onto the provider's sampling temperature.
type CreateTextGenerationRequest struct {
	Messages    []*Message
	Temperature float32
}

// Client is the contract with an external text-generation service. One call
// per turn, one attempt per call; retries are the caller's responsibility.
type Client interface {
	CreateTextGeneration(context.Context, *CreateTextGenerationRequest) (string, error)
}
