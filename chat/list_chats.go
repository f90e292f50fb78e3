package chat

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arlobryn/palaver/configuration"
	"github.com/arlobryn/palaver/internal/cli"
	"github.com/arlobryn/palaver/internal/llm"
	"github.com/arlobryn/palaver/store"
)

// NewListCmd instantiates and returns the chat list command.
func NewListCmd(config *configuration.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all chats",
		Long:  "List all chats",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			// Instantiate store.
			s, err := store.New(config.Chat.DatabasePath)
			cobra.CheckErr(err)
			defer s.Close()

			// Headers.
			cli.Title("PALAVER CHAT LIST")

			chats, err := s.List()
			cobra.CheckErr(err)
			for _, chat := range chats {
				// Pre-format: titles and message content may contain '%'.
				cli.AIOutput(fmt.Sprintf("chat (%s) - %s - %s\n", chat.ID, formatCreation(chat.CreatedAt), chat.Title))
				for i := 0; i < 3 && i < len(chat.Messages); i++ {
					if chat.Messages[i].Role == llm.RoleUser {
						cli.UserInput("> %s\n", chat.Messages[i].Content)
					}
				}
			}
		},
	}
	return cmd
}

// formatCreation renders a stored creation timestamp for display.
func formatCreation(createdAt string) string {
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return createdAt
	}
	return t.Local().Format("2006-01-02 15:04")
}
