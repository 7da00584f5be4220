package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/kondate/internal/config"
	"github.com/diogo/kondate/internal/render"
)

type recordingSaver struct {
	saved []config.Config
	err   error
}

func (r *recordingSaver) save(cfg config.Config) error {
	r.saved = append(r.saved, cfg)
	return r.err
}

func newConfigModel(t *testing.T, saver *recordingSaver) ConfigModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	m := NewConfigModel(config.DefaultConfig(), saver.save)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(ConfigModel)
}

func pressConfig(m ConfigModel, msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(ConfigModel), cmd
}

func TestConfigModel_SelectModel(t *testing.T) {
	saver := &recordingSaver{}
	m := newConfigModel(t, saver)

	m, _ = pressConfig(m, key(tea.KeyEnter))
	if m.choosing != 0 {
		t.Fatalf("choices should open for the model setting, choosing = %d", m.choosing)
	}
	m, _ = pressConfig(m, key(tea.KeyDown))
	m, cmd := pressConfig(m, key(tea.KeyEnter))

	if cmd == nil {
		t.Error("expected a feedback clear command")
	}
	if m.Config().Model != config.AvailableModels()[1] {
		t.Errorf("Model = %s", m.Config().Model)
	}
	if len(saver.saved) != 1 || saver.saved[0].Model != m.Config().Model {
		t.Errorf("saved = %+v", saver.saved)
	}
	if !strings.Contains(m.feedback, "saved") {
		t.Errorf("feedback = %q", m.feedback)
	}
}

func TestConfigModel_Toggle(t *testing.T) {
	saver := &recordingSaver{}
	m := newConfigModel(t, saver)

	for i := 0; i < 4; i++ {
		m, _ = pressConfig(m, key(tea.KeyDown))
	}
	m, _ = pressConfig(m, key(tea.KeyEnter))
	if !m.Config().CopyToClipboard {
		t.Error("toggle should enable copy_to_clipboard")
	}
	m, _ = pressConfig(m, key(tea.KeyEnter))
	if m.Config().CopyToClipboard {
		t.Error("second toggle should disable it")
	}
	if len(saver.saved) != 2 {
		t.Errorf("expected 2 saves, got %d", len(saver.saved))
	}
}

func TestConfigModel_TUIThemeApplies(t *testing.T) {
	defer render.SetTUITheme("tokyonight")
	m := newConfigModel(t, &recordingSaver{})

	m, _ = pressConfig(m, key(tea.KeyDown))
	m, _ = pressConfig(m, key(tea.KeyDown))
	m, _ = pressConfig(m, key(tea.KeyEnter))
	m, _ = pressConfig(m, key(tea.KeyDown))
	m, _ = pressConfig(m, key(tea.KeyEnter))

	want := render.TUIThemeNames()[1]
	if m.Config().TUITheme != want || render.GetTUITheme().Name != want {
		t.Errorf("theme = %s / %s, want %s", m.Config().TUITheme, render.GetTUITheme().Name, want)
	}
}

func TestConfigModel_EscClosesChoices(t *testing.T) {
	m := newConfigModel(t, &recordingSaver{})

	m, _ = pressConfig(m, key(tea.KeyEnter))
	m, cmd := pressConfig(m, key(tea.KeyEsc))
	if m.choosing != -1 || cmd != nil {
		t.Error("esc should only close the choice list")
	}
	_, cmd = pressConfig(m, key(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("esc on the main view should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestConfigModel_SaveError(t *testing.T) {
	m := newConfigModel(t, &recordingSaver{err: errors.New("read-only")})

	// up wraps onto the clipboard toggle
	m, _ = pressConfig(m, key(tea.KeyUp))
	m, _ = pressConfig(m, key(tea.KeyEnter))
	if !strings.Contains(m.feedback, "read-only") {
		t.Errorf("feedback = %q", m.feedback)
	}

	updated, _ := m.Update(feedbackClearMsg{})
	if updated.(ConfigModel).feedback != "" {
		t.Error("feedback should clear")
	}
}

func TestConfigModel_View(t *testing.T) {
	m := newConfigModel(t, &recordingSaver{})
	view := m.View()
	for _, want := range []string{"kondate config", "Model", "gemini-1.5-flash", "Log level"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
