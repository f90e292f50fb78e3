package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/arlobryn/palaver/chat"
	"github.com/arlobryn/palaver/configuration"
	"github.com/arlobryn/palaver/internal/llm"
	"github.com/arlobryn/palaver/store"
)

// NewCmd instantiates and returns the tui command.
func NewCmd(config *configuration.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Full-screen chat interface",
		Long:  "Full-screen chat interface",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			// Instantiate store.
			s, err := store.New(config.Chat.DatabasePath)
			cobra.CheckErr(err)
			defer s.Close()

			// Instantiate exchange client and manager.
			client := llm.NewOpenAIClient(config.APIKey, config.APIHost, config.Chat.DefaultModel)
			n := &notifier{}
			manager := chat.NewManager(s, client, n, config.Chat.Temperature)
			_ = manager.Startup()

			timeout := time.Duration(config.RequestTimeout) * time.Second
			model := NewModel(manager, n, timeout)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			cobra.CheckErr(err)
		},
	}
	return cmd
}
