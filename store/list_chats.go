package store

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// List all the chats in the store, ordered by the creation-time index.
func (s *Store) List() ([]*Chat, error) {
	rows, err := s.db.Query(`
		SELECT id, title, created_at, messages
		FROM chats
		ORDER BY created_at
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying chats")
	}
	defer rows.Close()

	var chats []*Chat
	for rows.Next() {
		chat := &Chat{}
		var messagesJSON string
		if err := rows.Scan(&chat.ID, &chat.Title, &chat.CreatedAt, &messagesJSON); err != nil {
			return nil, errors.Wrap(err, "scanning chat row")
		}
		if err := json.Unmarshal([]byte(messagesJSON), &chat.Messages); err != nil {
			return nil, errors.Wrap(err, "unmarshaling messages")
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating chat rows")
	}
	return chats, nil
}
