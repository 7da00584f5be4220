package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the colour scheme of the terminal interface
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color // focus, titles
	Secondary lipgloss.Color // user messages
	Accent    lipgloss.Color // chef replies
	Warning   lipgloss.Color // spinner

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

var (
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night (default)",
		Background:  lipgloss.Color("#1a1b26"),
		Surface:     lipgloss.Color("#24283b"),
		Border:      lipgloss.Color("#414868"),
		Primary:     lipgloss.Color("#7aa2f7"),
		Secondary:   lipgloss.Color("#9ece6a"),
		Accent:      lipgloss.Color("#bb9af7"),
		Warning:     lipgloss.Color("#e0af68"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
		TextMute:    lipgloss.Color("#3b4261"),
	}

	CatppuccinMochaTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha",
		Background:  lipgloss.Color("#1e1e2e"),
		Surface:     lipgloss.Color("#313244"),
		Border:      lipgloss.Color("#45475a"),
		Primary:     lipgloss.Color("#89b4fa"),
		Secondary:   lipgloss.Color("#a6e3a1"),
		Accent:      lipgloss.Color("#cba6f7"),
		Warning:     lipgloss.Color("#f9e2af"),
		Text:        lipgloss.Color("#cdd6f4"),
		TextDim:     lipgloss.Color("#6c7086"),
		TextMute:    lipgloss.Color("#45475a"),
	}

	NordTheme = TUITheme{
		Name:        "nord",
		Description: "Nord",
		Background:  lipgloss.Color("#2e3440"),
		Surface:     lipgloss.Color("#3b4252"),
		Border:      lipgloss.Color("#4c566a"),
		Primary:     lipgloss.Color("#88c0d0"),
		Secondary:   lipgloss.Color("#a3be8c"),
		Accent:      lipgloss.Color("#b48ead"),
		Warning:     lipgloss.Color("#ebcb8b"),
		Text:        lipgloss.Color("#eceff4"),
		TextDim:     lipgloss.Color("#7b88a1"),
		TextMute:    lipgloss.Color("#4c566a"),
	}

	DraculaTheme = TUITheme{
		Name:        "dracula",
		Description: "Dracula",
		Background:  lipgloss.Color("#282a36"),
		Surface:     lipgloss.Color("#44475a"),
		Border:      lipgloss.Color("#6272a4"),
		Primary:     lipgloss.Color("#8be9fd"),
		Secondary:   lipgloss.Color("#50fa7b"),
		Accent:      lipgloss.Color("#ff79c6"),
		Warning:     lipgloss.Color("#f1fa8c"),
		Text:        lipgloss.Color("#f8f8f2"),
		TextDim:     lipgloss.Color("#6272a4"),
		TextMute:    lipgloss.Color("#44475a"),
	}
)

var (
	themeMu      sync.RWMutex
	currentTheme = TokyoNightTheme
)

// AvailableTUIThemes returns every palette in display order
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{TokyoNightTheme, CatppuccinMochaTheme, NordTheme, DraculaTheme}
}

// GetTUIThemeByName looks a palette up by name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, theme := range AvailableTUIThemes() {
		if theme.Name == name {
			return theme, true
		}
	}
	return TUITheme{}, false
}

// GetTUITheme returns the active palette
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTUITheme activates a palette by name; unknown names are ignored
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// TUIThemeNames returns the palette names
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
