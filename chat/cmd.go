package chat

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/buger/goterm"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/arlobryn/palaver/configuration"
	"github.com/arlobryn/palaver/internal/cli"
	"github.com/arlobryn/palaver/internal/llm"
	"github.com/arlobryn/palaver/internal/markdown"
	"github.com/arlobryn/palaver/store"
)

// cliNotifier surfaces manager notifications on the terminal.
type cliNotifier struct{}

func (cliNotifier) Errorf(format string, args ...any) {
	cli.Error(format+"\n", args...)
}

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		ChatID      string
		Temperature float32
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Back and forth chat",
		Long:  "Back and forth chat",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			// Instantiate store.
			s, err := store.New(config.Chat.DatabasePath)
			cobra.CheckErr(err)
			defer s.Close()

			// Instantiate exchange client and manager.
			client := llm.NewOpenAIClient(config.APIKey, config.APIHost, config.Chat.DefaultModel)
			manager := NewManager(s, client, cliNotifier{}, config.Chat.Temperature)
			if opts.Temperature >= 0 {
				manager.SetCreativity(opts.Temperature)
			}

			// Load failure was notified; the loop below still runs.
			_ = manager.Startup()
			if opts.ChatID != "" {
				_ = manager.Select(opts.ChatID)
			}

			// Headers.
			cli.Title("PALAVER CHAT [%s]", config.Chat.DefaultModel)
			printActiveChat(manager)

			for {
				text, err := cli.PromptUser()
				if err == readline.ErrInterrupt || err == io.EOF {
					return
				}
				cobra.CheckErr(err)
				text = strings.TrimSpace(text)
				if text == "" {
					continue
				}
				if strings.HasPrefix(text, "/") {
					if quit := runCommand(manager, text); quit {
						return
					}
					continue
				}

				// One exchange turn. Input is disabled for its duration by
				// virtue of the prompt loop being sequential.
				ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.RequestTimeout)*time.Second)
				before := 0
				if manager.Active() != nil {
					before = len(manager.Active().Messages)
				}
				err = manager.SendUserMessage(ctx, text)
				cancel()
				if err != nil || manager.Active() == nil {
					continue
				}
				messages := manager.Active().Messages
				if len(messages) > before+1 {
					cli.AIOutput(markdown.Render(messages[len(messages)-1].Content, goterm.Width()))
				}
			}
		},
	}
	cmd.Flags().StringVarP(&opts.ChatID, "chat", "c", "", "resume the chat with this id")
	cmd.Flags().Float32VarP(&opts.Temperature, "temperature", "t", -1, "creativity parameter in [0, 1]")
	cmd.AddCommand(NewListCmd(config))
	return cmd
}

// runCommand handles a slash command. Returns true when the REPL should exit.
func runCommand(manager *Manager, text string) bool {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/quit", "/q":
		return true

	case "/new":
		if _, err := manager.Create(); err == nil {
			printActiveChat(manager)
		}

	case "/chats":
		active := manager.Active()
		for i, chat := range manager.Chats() {
			marker := " "
			if active != nil && chat.ID == active.ID {
				marker = "*"
			}
			cli.Info("%s %2d. %s (%d messages)\n", marker, i+1, chat.Title, len(chat.Messages))
		}

	case "/select":
		if len(fields) < 2 {
			cli.Error("usage: /select <number>\n")
			return false
		}
		index, err := strconv.Atoi(fields[1])
		chats := manager.Chats()
		if err != nil || index < 1 || index > len(chats) {
			cli.Error("no such chat (%s)\n", fields[1])
			return false
		}
		if err := manager.Select(chats[index-1].ID); err == nil {
			printActiveChat(manager)
		}

	case "/delete":
		active := manager.Active()
		if active == nil {
			return false
		}
		if !cli.QueryUser(fmt.Sprintf("Delete chat %q?", active.Title)) {
			return false
		}
		if err := manager.DeleteActive(); err == nil {
			printActiveChat(manager)
		}

	case "/temp":
		if len(fields) < 2 {
			cli.Info("creativity: %.2f\n", manager.Creativity())
			return false
		}
		value, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			cli.Error("invalid creativity (%s)\n", fields[1])
			return false
		}
		manager.SetCreativity(float32(value))
		cli.Info("creativity: %.2f\n", manager.Creativity())

	case "/theme":
		if len(fields) < 2 {
			cli.Info("themes: %s\n", strings.Join(cli.ThemeNames(), ", "))
			return false
		}
		if err := cli.SetTheme(fields[1]); err != nil {
			cli.Error("%v\n", err)
		}

	case "/help":
		cli.UserCommand("/new /chats /select <n> /delete /temp <v> /theme <name> /quit\n")

	default:
		cli.Error("unknown command (%s); try /help\n", fields[0])
	}
	return false
}

// printActiveChat prints the active chat's title and transcript.
func printActiveChat(manager *Manager) {
	chat := manager.Active()
	if chat == nil {
		return
	}
	cli.Separator()
	cli.Info("%s\n", chat.Title)
	for _, message := range chat.Messages {
		switch message.Role {
		case llm.RoleUser:
			cli.UserInput("> %s\n", message.Content)
		case llm.RoleAssistant:
			cli.AIOutput(markdown.Render(message.Content, goterm.Width()))
		}
	}
}
