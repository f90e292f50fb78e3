package store

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrChatNotFound is returned by Get for a valid but missing id.
var ErrChatNotFound = errors.New("chat not found")

// Get a chat.
func (s *Store) Get(chatID string) (*Chat, error) {
	chat := &Chat{}
	var messagesJSON string

	err := s.db.QueryRow(`
		SELECT id, title, created_at, messages
		FROM chats
		WHERE id = ?
	`, chatID).Scan(&chat.ID, &chat.Title, &chat.CreatedAt, &messagesJSON)
	if err == sql.ErrNoRows {
		return nil, ErrChatNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying chat")
	}

	if err := json.Unmarshal([]byte(messagesJSON), &chat.Messages); err != nil {
		return nil, errors.Wrap(err, "unmarshaling messages")
	}
	return chat, nil
}
