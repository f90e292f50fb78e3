package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/arlobryn/palaver/internal/llm"
)

// DefaultTitle is the placeholder title assigned to a chat before a title is
// derived from its first message.
const DefaultTitle = "New Chat"

// creationTimeLayout is RFC-3339 with fixed-width fractional seconds, so that
// lexicographic order on the created_at column is chronological order.
const creationTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Chat represents a chat.
type Chat struct {
	// ID of this chat.
	ID string `json:"id"`
	// Title of this chat. Starts as DefaultTitle and is rewritten exactly
	// once, from the first user message.
	Title string `json:"title"`
	// CreatedAt is the creation time, RFC-3339 UTC. It is the sole ordering
	// key for chat listing.
	CreatedAt string `json:"createdAt"`
	// The messages of this chat, in conversation order. Append-only.
	Messages []*llm.Message `json:"messages"`
}

// NewChat instantiates and returns a new chat.
func NewChat() *Chat {
	return &Chat{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		CreatedAt: time.Now().UTC().Format(creationTimeLayout),
	}
}
