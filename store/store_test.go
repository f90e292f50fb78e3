package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlobryn/palaver/internal/llm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "chats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	chat := NewChat()
	chat.Messages = []*llm.Message{
		llm.NewMessage(llm.RoleUser, "hello"),
		llm.NewMessage(llm.RoleAssistant, "hi there"),
	}
	id, err := s.Put(chat)
	require.NoError(t, err)
	require.Equal(t, chat.ID, id)

	got, err := s.Get(chat.ID)
	require.NoError(t, err)
	require.Equal(t, chat, got)
}

func TestPutOverwritesFullRecord(t *testing.T) {
	s := newTestStore(t)

	chat := NewChat()
	_, err := s.Put(chat)
	require.NoError(t, err)

	chat.Title = "renamed"
	chat.Messages = []*llm.Message{llm.NewMessage(llm.RoleUser, "hello")}
	_, err = s.Put(chat)
	require.NoError(t, err)

	got, err := s.Get(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	require.Len(t, got.Messages, 1)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("missing")
	require.True(t, errors.Is(err, ErrChatNotFound))
}

func TestListOrderedByCreation(t *testing.T) {
	s := newTestStore(t)

	// Insert out of creation order.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		chat := NewChat()
		chat.CreatedAt = base.Add(offset).Format(creationTimeLayout)
		chat.Title = chat.CreatedAt
		_, err := s.Put(chat)
		require.NoError(t, err)
	}

	chats, err := s.List()
	require.NoError(t, err)
	require.Len(t, chats, 3)
	for i := 1; i < len(chats); i++ {
		assert.Less(t, chats[i-1].CreatedAt, chats[i].CreatedAt)
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	chats, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	chat := NewChat()
	_, err := s.Put(chat)
	require.NoError(t, err)

	require.NoError(t, s.Delete(chat.ID))
	_, err = s.Get(chat.ID)
	require.True(t, errors.Is(err, ErrChatNotFound))

	// Deleting a missing id is not an error.
	require.NoError(t, s.Delete(chat.ID))
	require.NoError(t, s.Delete("never-existed"))
}

func TestAppendMessage(t *testing.T) {
	s := newTestStore(t)

	chat := NewChat()
	_, err := s.Put(chat)
	require.NoError(t, err)

	first := llm.NewMessage(llm.RoleUser, "hello")
	second := llm.NewMessage(llm.RoleAssistant, "hi there")
	require.NoError(t, s.AppendMessage(chat.ID, first))
	require.NoError(t, s.AppendMessage(chat.ID, second))

	got, err := s.Get(chat.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, first, got.Messages[0])
	assert.Equal(t, second, got.Messages[1])
}

func TestAppendMessageMissingChat(t *testing.T) {
	s := newTestStore(t)

	err := s.AppendMessage("missing", llm.NewMessage(llm.RoleUser, "hello"))
	require.True(t, errors.Is(err, ErrChatNotFound))
}

func TestAppendMessageConcurrentAppendsLoseNothing(t *testing.T) {
	s := newTestStore(t)

	chat := NewChat()
	_, err := s.Put(chat)
	require.NoError(t, err)

	const writers = 8
	const perWriter = 5
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				assert.NoError(t, s.AppendMessage(chat.ID, llm.NewMessage(llm.RoleUser, "m")))
			}
		}()
	}
	wg.Wait()

	got, err := s.Get(chat.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, writers*perWriter)
}
