package markdown

import (
	"github.com/charmbracelet/glamour"
)

// Render renders markdown content for the terminal, word-wrapped to width.
// On any rendering failure the raw content is returned unchanged.
func Render(content string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
