package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const inputHeight = 3

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	title := "palaver"
	if active := m.manager.Active(); active != nil {
		title = active.Title
	}
	header := headerStyle.Render(title) +
		statusStyle.Render(fmt.Sprintf("  [%d chats | creativity %.2f]", len(m.manager.Chats()), m.manager.Creativity()))
	if m.sending {
		header += "  " + m.spinner.View() + statusStyle.Render("thinking...")
	}

	status := statusStyle.Render("enter: send | tab: switch chat | ctrl+n: new | ctrl+x: delete | esc: quit")
	if len(m.notices) > 0 {
		status = noticeStyle.Render(strings.Join(m.notices, " | "))
	}

	return strings.Join([]string{
		header,
		m.viewport.View(),
		m.textarea.View(),
		status,
	}, "\n")
}
