package commands

import (
	"strings"
	"testing"

	"github.com/diogo/kondate/internal/api"
)

func TestConfigCommand_PrintsMaskedKey(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("x"))

	if err := td.run(t, "config"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	out := td.stdout.String()

	if strings.Contains(out, "config-key-1234") {
		t.Error("API key must be masked")
	}
	for _, want := range []string{"1234 (config)", "gemini-1.5-flash", "127.0.0.1:8080", "config.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigCommand_NoKey(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("x"))
	td.cfg.APIKey = ""

	if err := td.run(t, "config"); err != nil {
		t.Fatalf("config should not fail without a key: %v", err)
	}
	if !strings.Contains(td.stdout.String(), "(not set) (none)") {
		t.Errorf("output = %q", td.stdout.String())
	}
}

func TestConfigCommand_TimeoutDisplay(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("x"))
	td.cfg.TimeoutSeconds = 30

	if err := td.run(t, "config"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(td.stdout.String(), "30s") {
		t.Errorf("output = %q", td.stdout.String())
	}
}

func TestConfigEdit(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("x"))
	td.cfg.TUITheme = "nord"

	if err := td.run(t, "config", "edit"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if td.tui.configCalls != 1 {
		t.Fatalf("configCalls = %d", td.tui.configCalls)
	}
	if td.tui.configSeen.TUITheme != "nord" {
		t.Errorf("config editor got theme %q", td.tui.configSeen.TUITheme)
	}
}
