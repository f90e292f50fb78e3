package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/arlobryn/palaver/internal/debug"
	"github.com/arlobryn/palaver/internal/llm"
	"github.com/arlobryn/palaver/store"
)

// Notifier surfaces transient, user-visible notifications. Presentation
// layers provide their own implementation.
type Notifier interface {
	Errorf(format string, args ...any)
}

// Manager is the single source of truth for which chats exist and which chat
// is active. All state mutation goes through its operations; presentation
// layers hold a reference to it and never write its fields directly.
//
// The manager is safe for concurrent use: accessors return snapshots, and at
// most one SendUserMessage proceeds at a time. A send arriving while another
// is in flight is a silent no-op, so presentation layers gate input on Busy
// for feedback, not for correctness.
type Manager struct {
	store    *store.Store
	client   llm.Client
	notifier Notifier
	logger   *slog.Logger

	mu          sync.Mutex
	chats       []*store.Chat
	active      *store.Chat
	busy        bool
	temperature float32
}

// NewManager instantiates and returns a new manager.
func NewManager(s *store.Store, client llm.Client, notifier Notifier, temperature float32) *Manager {
	return &Manager{
		store:       s,
		client:      client,
		notifier:    notifier,
		logger:      debug.GetLogger(),
		temperature: clampCreativity(temperature),
	}
}

// Startup loads all chats from the store. An empty store yields a fresh chat;
// otherwise the first chat in creation order becomes active. A load failure
// is non-fatal: it is surfaced once and the in-memory list stays empty.
func (m *Manager) Startup() error {
	chats, err := m.store.List()
	if err != nil {
		m.logger.Error("loading chats", "error", err)
		m.notifier.Errorf("failed to load chat history")
		return err
	}

	m.mu.Lock()
	m.chats = chats
	empty := len(m.chats) == 0
	if !empty {
		m.active = m.chats[0]
	}
	m.mu.Unlock()

	if empty {
		_, err := m.Create()
		return err
	}
	return nil
}

// Create a new chat with a placeholder title and no messages, persist it, and
// make it active. The in-memory list only changes once the write succeeded.
func (m *Manager) Create() (*store.Chat, error) {
	chat := store.NewChat()
	if _, err := m.store.Put(chat); err != nil {
		m.logger.Error("creating chat", "error", err)
		m.notifier.Errorf("failed to create a new chat")
		return nil, err
	}

	m.mu.Lock()
	m.chats = append([]*store.Chat{chat}, m.chats...)
	m.active = chat
	m.mu.Unlock()
	return snapshotChat(chat), nil
}

// Select fetches the full record for id from the store and makes it active.
// On "not found" no state changes.
func (m *Manager) Select(id string) error {
	chat, err := m.store.Get(id)
	if err != nil {
		m.logger.Error("selecting chat", "chat", id, "error", err)
		m.notifier.Errorf("failed to load selected chat")
		return err
	}

	m.mu.Lock()
	// Keep the list pointing at the freshly fetched record.
	for i, existing := range m.chats {
		if existing.ID == chat.ID {
			m.chats[i] = chat
		}
	}
	m.active = chat
	m.mu.Unlock()
	return nil
}

// DeleteActive removes the active chat from the store and the in-memory
// list, then activates the first remaining chat, or creates a fresh one if
// none remain. No-op when no chat is active.
func (m *Manager) DeleteActive() error {
	m.mu.Lock()
	deleted := m.active
	m.mu.Unlock()
	if deleted == nil {
		return nil
	}

	if err := m.store.Delete(deleted.ID); err != nil {
		m.logger.Error("deleting chat", "chat", deleted.ID, "error", err)
		m.notifier.Errorf("failed to delete chat")
		return err
	}

	m.mu.Lock()
	remaining := m.chats[:0]
	for _, chat := range m.chats {
		if chat.ID != deleted.ID {
			remaining = append(remaining, chat)
		}
	}
	m.chats = remaining
	if len(m.chats) > 0 {
		m.active = m.chats[0]
		m.mu.Unlock()
		return nil
	}
	m.active = nil
	m.mu.Unlock()

	_, err := m.Create()
	return err
}

// SendUserMessage runs one full exchange turn: persist and reflect the user
// message, derive the title if this is the chat's first message, then fetch
// the assistant reply and persist it. A failed exchange leaves the user
// message in place. Blank input, a missing active chat, or an exchange
// already in flight is a silent no-op.
func (m *Manager) SendUserMessage(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	// Claim the single exchange slot before touching the store, so two
	// racing sends cannot interleave their appends.
	m.mu.Lock()
	if m.active == nil || m.busy {
		m.mu.Unlock()
		return nil
	}
	m.busy = true
	chat := m.active
	firstMessage := len(chat.Messages) == 0 && chat.Title == store.DefaultTitle
	temperature := m.temperature
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
	}()

	userMessage := llm.NewMessage(llm.RoleUser, content)
	if err := m.store.AppendMessage(chat.ID, userMessage); err != nil {
		m.logger.Error("appending user message", "chat", chat.ID, "error", err)
		m.notifier.Errorf("failed to save message")
		return err
	}
	m.mu.Lock()
	chat.Messages = append(chat.Messages, userMessage)
	history := append([]*llm.Message(nil), chat.Messages...)
	m.mu.Unlock()

	if firstMessage {
		m.mu.Lock()
		chat.Title = deriveTitle(content)
		record := snapshotChat(chat)
		m.mu.Unlock()
		if _, err := m.store.Put(record); err != nil {
			// The derived title is cosmetic; log without surfacing.
			m.logger.Error("persisting derived title", "chat", chat.ID, "error", err)
		}
	}

	request := &llm.CreateTextGenerationRequest{
		Messages:    history,
		Temperature: temperature,
	}
	reply, err := m.client.CreateTextGeneration(ctx, request)
	if err != nil {
		m.logger.Error("creating text generation", "chat", chat.ID, "error", err)
		m.notifier.Errorf("failed to get a response")
		return err
	}

	assistantMessage := llm.NewMessage(llm.RoleAssistant, reply)
	if err := m.store.AppendMessage(chat.ID, assistantMessage); err != nil {
		m.logger.Error("appending assistant message", "chat", chat.ID, "error", err)
		m.notifier.Errorf("failed to save response")
		return err
	}
	m.mu.Lock()
	chat.Messages = append(chat.Messages, assistantMessage)
	m.mu.Unlock()
	return nil
}

// SetCreativity sets the creativity parameter, clamped to [0, 1].
func (m *Manager) SetCreativity(v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.temperature = clampCreativity(v)
}

// Creativity returns the current creativity parameter.
func (m *Manager) Creativity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.temperature
}

// Chats returns a snapshot of the in-memory chat list.
func (m *Manager) Chats() []*store.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	chats := make([]*store.Chat, 0, len(m.chats))
	for _, chat := range m.chats {
		chats = append(chats, snapshotChat(chat))
	}
	return chats
}

// Active returns a snapshot of the active chat, or nil.
func (m *Manager) Active() *store.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return snapshotChat(m.active)
}

// Busy reports whether an exchange is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// snapshotChat copies a chat record. Messages themselves are immutable after
// creation, so sharing their pointers is safe.
func snapshotChat(chat *store.Chat) *store.Chat {
	if chat == nil {
		return nil
	}
	snapshot := *chat
	snapshot.Messages = append([]*llm.Message(nil), chat.Messages...)
	return &snapshot
}

func clampCreativity(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
