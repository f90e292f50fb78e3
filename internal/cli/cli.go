package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/buger/goterm"
	"github.com/chzyer/readline"
)

var width = goterm.Width()

// Separator printed to cli.
func Separator() {
	separator := strings.Repeat("-", width)
	activeTheme.Separator.Println(separator)
}

// Title printed to cli.
func Title(text string, args ...any) {
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := (width - len(title)) / 2
	if leftWidth < 0 {
		leftWidth = 0
	}
	separator1 := strings.Repeat("-", leftWidth)
	separator2 := strings.Repeat("-", max(width-len(title)-len(separator1), 0))
	output := fmt.Sprintf("%s%s%s", separator1, title, separator2)
	activeTheme.Title.Println(output)
}

// UserInput printed to cli.
func UserInput(text string, args ...any) {
	activeTheme.UserInput.Printf(text, args...)
}

// UserCommand printed to cli.
func UserCommand(text string, args ...any) {
	if len(args) == 0 {
		activeTheme.UserCommand.Print(text)
		return
	}
	activeTheme.UserCommand.Printf(text, args...)
}

// AIOutput printed to cli.
func AIOutput(text string, args ...any) {
	text = strings.ReplaceAll(text, "%", "%%")
	activeTheme.AIOutput.Printf(text, args...)
}

// Info printed to cli.
func Info(text string, args ...any) {
	activeTheme.Info.Printf(text, args...)
}

// Error printed to cli.
func Error(text string, args ...any) {
	activeTheme.Error.Printf(text, args...)
}

// PromptUser for input.
func PromptUser() (string, error) {
	config := &readline.Config{
		Prompt:            activeTheme.Prompt.Sprint("> "),
		InterruptPrompt:   "^C",
		HistoryFile:       "/tmp/palaver.history",
		HistorySearchFold: true,
	}
	rl, err := readline.NewEx(config)
	if err != nil {
		return "", err
	}
	defer rl.Close()
	return rl.Readline()
}

// QueryUser a yes/no question.
func QueryUser(question string) bool {
	surveyQuestion := &survey.Confirm{
		Message: question,
	}
	answer := false
	if err := survey.AskOne(surveyQuestion, &answer); err != nil {
		return false
	}
	return answer
}
