package main

import (
	"github.com/spf13/cobra"

	"github.com/arlobryn/palaver/chat"
	"github.com/arlobryn/palaver/chat/tui"
	"github.com/arlobryn/palaver/configuration"
	"github.com/arlobryn/palaver/internal/cli"
)

const configFilepath = "~/.palaver/config.json"

var rootCmd = &cobra.Command{
	Use:   "palaver",
	Short: "A terminal client for AI chat",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	// An unknown configured theme falls back to the default palette.
	_ = cli.SetTheme(config.Theme)

	rootCmd.AddCommand(chat.NewCmd(config))
	rootCmd.AddCommand(tui.NewCmd(config))
	rootCmd.Execute()
}
