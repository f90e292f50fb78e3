package store

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Put inserts or fully overwrites the record for chat.ID, and returns the id.
// Callers always pass the complete desired record.
func (s *Store) Put(chat *Chat) (string, error) {
	messages, err := json.Marshal(chat.Messages)
	if err != nil {
		return "", errors.Wrap(err, "marshaling messages")
	}

	// REPLACE INTO handles both the insert and the overwrite case.
	_, err = s.db.Exec(`
		REPLACE INTO chats (id, title, created_at, messages)
		VALUES (?, ?, ?, ?)
	`, chat.ID, chat.Title, chat.CreatedAt, string(messages))
	if err != nil {
		return "", errors.Wrap(err, "writing chat to database")
	}
	return chat.ID, nil
}
