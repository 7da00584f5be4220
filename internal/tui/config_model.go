package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/kondate/internal/config"
	"github.com/diogo/kondate/internal/render"
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// setting is one editable line of the config menu. Toggles have no choices.
type setting struct {
	label   string
	choices func() []string
	get     func(c config.Config) string
	set     func(c *config.Config, value string)
}

func configSettings() []setting {
	return []setting{
		{
			label:   "Model",
			choices: config.AvailableModels,
			get:     func(c config.Config) string { return c.Model },
			set:     func(c *config.Config, v string) { c.Model = v },
		},
		{
			label:   "Markdown style",
			choices: render.StyleNames,
			get:     func(c config.Config) string { return c.Markdown.Style },
			set:     func(c *config.Config, v string) { c.Markdown.Style = v },
		},
		{
			label:   "TUI theme",
			choices: render.TUIThemeNames,
			get:     func(c config.Config) string { return c.TUITheme },
			set: func(c *config.Config, v string) {
				c.TUITheme = v
				render.SetTUITheme(v)
				UpdateTheme()
			},
		},
		{
			label:   "Log level",
			choices: config.LogLevels,
			get:     func(c config.Config) string { return c.LogLevel },
			set:     func(c *config.Config, v string) { c.LogLevel = v },
		},
		{
			label: "Copy replies to clipboard",
			get:   func(c config.Config) string { return fmt.Sprint(c.CopyToClipboard) },
			set:   func(c *config.Config, v string) { c.CopyToClipboard = v == "true" },
		},
	}
}

// ConfigModel is the interactive editor behind `kondate config edit`
type ConfigModel struct {
	config    config.Config
	configDir string
	settings  []setting
	save      func(config.Config) error

	cursor int
	// choosing is the index of the setting whose choices are open, or -1
	choosing     int
	choiceCursor int

	feedback        string
	feedbackTimeout time.Duration

	width int
	ready bool
}

// NewConfigModel creates a config editor over cfg. save persists changes.
func NewConfigModel(cfg config.Config, save func(config.Config) error) ConfigModel {
	configDir, _ := config.GetConfigDir()
	if save == nil {
		save = config.SaveConfig
	}
	return ConfigModel{
		config:          cfg,
		configDir:       configDir,
		settings:        configSettings(),
		save:            save,
		choosing:        -1,
		feedbackTimeout: 2 * time.Second,
	}
}

// Config returns the edited configuration
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		if m.choosing >= 0 {
			return m.updateChoice(msg)
		}
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "up", "k":
			m.cursor = (m.cursor - 1 + len(m.settings)) % len(m.settings)
		case "down", "j":
			m.cursor = (m.cursor + 1) % len(m.settings)
		case "enter", " ":
			s := m.settings[m.cursor]
			if s.choices == nil {
				current := s.get(m.config) == "true"
				s.set(&m.config, fmt.Sprint(!current))
				return m.persist(s.label)
			}
			m.choosing = m.cursor
			m.choiceCursor = indexOf(s.choices(), s.get(m.config))
		}
	}
	return m, nil
}

func (m ConfigModel) updateChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.settings[m.choosing]
	choices := s.choices()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.choosing = -1
	case "up", "k":
		m.choiceCursor = (m.choiceCursor - 1 + len(choices)) % len(choices)
	case "down", "j":
		m.choiceCursor = (m.choiceCursor + 1) % len(choices)
	case "enter":
		s.set(&m.config, choices[m.choiceCursor])
		m.choosing = -1
		return m.persist(s.label)
	}
	return m, nil
}

func (m ConfigModel) persist(label string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = "✗ " + err.Error()
	} else {
		m.feedback = "✓ " + label + " saved"
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return 0
}

// View renders the config editor
func (m ConfigModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("✦ kondate config"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.configDir))
	b.WriteString("\n\n")

	for i, s := range m.settings {
		cursor := "  "
		if i == m.cursor {
			cursor = rowCursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-28s %s\n", cursor, s.label, subtitleStyle.Render(s.get(m.config))))

		if i == m.choosing {
			for j, choice := range s.choices() {
				marker := "    "
				if j == m.choiceCursor {
					marker = rowCursorStyle.Render("  ▸ ")
				}
				b.WriteString(marker + choice + "\n")
			}
		}
	}

	if m.feedback != "" {
		b.WriteString("\n" + hintStyle.Render(m.feedback) + "\n")
	}
	b.WriteString("\n" + statusDescStyle.Render("↑↓ move  •  enter select  •  esc back/quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// RunConfig starts the config editor and returns the final configuration
func RunConfig(cfg config.Config) (config.Config, error) {
	p := tea.NewProgram(NewConfigModel(cfg, nil), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return cfg, fmt.Errorf("tui: %w", err)
	}
	if cm, ok := final.(ConfigModel); ok {
		return cm.Config(), nil
	}
	return cfg, nil
}
