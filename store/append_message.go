package store

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/arlobryn/palaver/internal/llm"
)

// AppendMessage reads the record for chatID, appends message to its message
// sequence and writes the full record back, as one transaction. Two appends
// racing on the same chat id cannot lose an update.
func (s *Store) AppendMessage(chatID string, message *llm.Message) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	var messagesJSON string
	err = tx.QueryRow(`SELECT messages FROM chats WHERE id = ?`, chatID).Scan(&messagesJSON)
	if err == sql.ErrNoRows {
		return ErrChatNotFound
	}
	if err != nil {
		return errors.Wrap(err, "querying chat messages")
	}

	var messages []*llm.Message
	if err := json.Unmarshal([]byte(messagesJSON), &messages); err != nil {
		return errors.Wrap(err, "unmarshaling messages")
	}
	messages = append(messages, message)
	updated, err := json.Marshal(messages)
	if err != nil {
		return errors.Wrap(err, "marshaling messages")
	}

	if _, err := tx.Exec(`UPDATE chats SET messages = ? WHERE id = ?`, string(updated), chatID); err != nil {
		return errors.Wrap(err, "updating chat messages")
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}
