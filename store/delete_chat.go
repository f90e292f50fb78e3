package store

import (
	"github.com/pkg/errors"
)

// Delete removes a chat. Deleting a non-existent id is not an error.
func (s *Store) Delete(chatID string) error {
	if _, err := s.db.Exec(`DELETE FROM chats WHERE id = ?`, chatID); err != nil {
		return errors.Wrap(err, "deleting chat from database")
	}
	return nil
}
