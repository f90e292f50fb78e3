package cli

import (
	"sort"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Theme is a cosmetic palette for terminal output.
type Theme struct {
	UserInput   *color.Color
	UserCommand *color.Color
	AIOutput    *color.Color
	Title       *color.Color
	Separator   *color.Color
	Error       *color.Color
	Info        *color.Color
	Prompt      *color.Color
}

var themes = map[string]*Theme{
	"forest": {
		UserInput:   color.New(color.FgWhite),
		UserCommand: color.New(color.FgGreen),
		AIOutput:    color.New(color.FgCyan),
		Title:       color.New(color.FgMagenta, color.Bold),
		Separator:   color.New(color.FgHiBlack),
		Error:       color.New(color.FgRed),
		Info:        color.New(color.FgYellow),
		Prompt:      color.New(color.FgHiBlue),
	},
	"ocean": {
		UserInput:   color.New(color.FgHiWhite),
		UserCommand: color.New(color.FgHiCyan),
		AIOutput:    color.New(color.FgBlue),
		Title:       color.New(color.FgHiBlue, color.Bold),
		Separator:   color.New(color.FgHiBlack),
		Error:       color.New(color.FgHiRed),
		Info:        color.New(color.FgCyan),
		Prompt:      color.New(color.FgHiCyan),
	},
	"ember": {
		UserInput:   color.New(color.FgHiWhite),
		UserCommand: color.New(color.FgYellow),
		AIOutput:    color.New(color.FgHiYellow),
		Title:       color.New(color.FgRed, color.Bold),
		Separator:   color.New(color.FgHiBlack),
		Error:       color.New(color.FgHiRed),
		Info:        color.New(color.FgHiMagenta),
		Prompt:      color.New(color.FgHiYellow),
	},
	"mono": {
		UserInput:   color.New(color.FgWhite),
		UserCommand: color.New(color.FgHiWhite),
		AIOutput:    color.New(color.FgHiWhite),
		Title:       color.New(color.FgWhite, color.Bold),
		Separator:   color.New(color.FgHiBlack),
		Error:       color.New(color.FgWhite, color.Bold),
		Info:        color.New(color.FgWhite),
		Prompt:      color.New(color.FgHiWhite),
	},
}

var activeTheme = themes["forest"]

// SetTheme switches the active palette.
func SetTheme(name string) error {
	theme, ok := themes[name]
	if !ok {
		return errors.Errorf("unknown theme (%s)", name)
	}
	activeTheme = theme
	return nil
}

// ThemeNames returns the available palette names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
