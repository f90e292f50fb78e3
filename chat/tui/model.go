package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arlobryn/palaver/chat"
	"github.com/arlobryn/palaver/internal/llm"
	"github.com/arlobryn/palaver/internal/markdown"
)

// sendResultMsg is delivered when an exchange turn finishes.
type sendResultMsg struct {
	err error
}

// notifier collects manager notifications for display in the status line.
// Notifications can arrive from the send command's goroutine.
type notifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *notifier) Errorf(format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, fmt.Sprintf(format, args...))
}

func (n *notifier) drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	messages := n.messages
	n.messages = nil
	return messages
}

// Model is the bubbletea model wrapping the conversation manager.
type Model struct {
	manager  *chat.Manager
	notifier *notifier
	timeout  time.Duration

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// sending is set on the update loop the moment a send is dispatched,
	// before the command goroutine has had a chance to run. All input
	// gating keys off it.
	sending bool
	notices []string
	ready   bool
	width   int
	height  int
}

// NewModel instantiates and returns a new model.
func NewModel(manager *chat.Manager, n *notifier, timeout time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		manager:  manager,
		notifier: n,
		timeout:  timeout,
		textarea: ta,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chromeHeight := inputHeight + 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.textarea.SetWidth(msg.Width)
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+n":
			if m.sending {
				return m, nil
			}
			if _, err := m.manager.Create(); err == nil {
				m.refreshTranscript()
			}
			m.notices = append(m.notices, m.notifier.drain()...)
			return m, nil
		case "tab":
			if m.sending {
				return m, nil
			}
			m.selectNextChat()
			return m, nil
		case "ctrl+x":
			if m.sending {
				return m, nil
			}
			if err := m.manager.DeleteActive(); err == nil {
				m.refreshTranscript()
			}
			m.notices = append(m.notices, m.notifier.drain()...)
			return m, nil
		case "enter":
			// Input is disabled while an exchange is in flight.
			if m.sending {
				return m, nil
			}
			content := m.textarea.Value()
			if strings.TrimSpace(content) == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.notices = nil
			m.sending = true
			return m, tea.Batch(m.spinner.Tick, m.sendCmd(content))
		}

	case sendResultMsg:
		m.sending = false
		m.refreshTranscript()
		m.notices = append(m.notices, m.notifier.drain()...)
		if msg.err != nil && len(m.notices) == 0 {
			m.notices = append(m.notices, "exchange failed")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var taCmd, vpCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

// sendCmd runs one exchange turn off the update loop.
func (m Model) sendCmd(content string) tea.Cmd {
	manager, timeout := m.manager, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return sendResultMsg{err: manager.SendUserMessage(ctx, content)}
	}
}

// selectNextChat cycles the active chat.
func (m *Model) selectNextChat() {
	chats := m.manager.Chats()
	active := m.manager.Active()
	if len(chats) < 2 || active == nil {
		return
	}
	for i, c := range chats {
		if c.ID == active.ID {
			next := chats[(i+1)%len(chats)]
			if err := m.manager.Select(next.ID); err == nil {
				m.refreshTranscript()
			}
			m.notices = append(m.notices, m.notifier.drain()...)
			return
		}
	}
}

// refreshTranscript re-renders the active chat into the viewport.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	active := m.manager.Active()
	if active == nil {
		m.viewport.SetContent("")
		return
	}
	var sb strings.Builder
	for _, message := range active.Messages {
		switch message.Role {
		case llm.RoleUser:
			sb.WriteString(userStyle.Render("> " + message.Content))
			sb.WriteString("\n")
		case llm.RoleAssistant:
			sb.WriteString(markdown.Render(message.Content, m.viewport.Width))
		}
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}
