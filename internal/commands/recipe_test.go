package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/kondate/internal/api"
	"github.com/diogo/kondate/internal/chat"
	apierrors "github.com/diogo/kondate/internal/errors"
	"github.com/diogo/kondate/internal/models"
)

func TestRecipeCommand_Args(t *testing.T) {
	cmd := NewRecipeCmd(NewDependencies())
	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("recipe should require at least one ingredient")
	}
	if err := cmd.Args(cmd, []string{"onion=200"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRecipeCommand_RawOutput(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("# Soup", "Boil."))

	if err := td.run(t, "recipe", "onion=200", " =50", "carrot"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := td.stdout.String(); got != "# Soup\nBoil.\n" {
		t.Errorf("stdout = %q", got)
	}

	req, ok := td.mock.LastRequest()
	if !ok {
		t.Fatal("no request sent")
	}
	if len(req.Contents) != 1 {
		t.Fatalf("expected a single-turn request, got %d entries", len(req.Contents))
	}
	if prompt := req.Contents[0].Parts[0].Text; !strings.Contains(prompt, "onion 200g、carrot g\n") {
		t.Errorf("prompt should carry the ingredient list, got %q", prompt)
	}
	if len(td.clipboard) != 0 {
		t.Error("clipboard should not be touched without --copy")
	}
}

func TestRecipeCommand_Rendered(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("**Soup**"))
	td.deps.IsTTY = func() bool { return true }

	if err := td.run(t, "recipe", "onion=200"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	out := td.stdout.String()
	if !strings.Contains(out, models.Message{Role: models.RoleAssistant}.Label()) {
		t.Errorf("rendered output should carry the assistant label, got %q", out)
	}
	if strings.Contains(out, "**Soup**") {
		t.Error("markdown should be rendered, not printed raw")
	}
	if !strings.Contains(td.stderr.String(), "Done") {
		t.Errorf("spinner should report success on stderr, got %q", td.stderr.String())
	}
}

func TestRecipeCommand_RawFlagOnTTY(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("**Soup**"))
	td.deps.IsTTY = func() bool { return true }

	if err := td.run(t, "recipe", "--raw", "onion=200"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := td.stdout.String(); got != "**Soup**\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRecipeCommand_Copy(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		fromCfg  bool
		clipErr  error
		wantCopy bool
		wantMsg  string
	}{
		{name: "flag", args: []string{"--copy"}, wantCopy: true, wantMsg: "Copied"},
		{name: "config", fromCfg: true, wantCopy: true, wantMsg: "Copied"},
		{name: "clipboard failure is a warning", args: []string{"--copy"}, clipErr: errors.New("no display"), wantCopy: true, wantMsg: "Failed to copy"},
		{name: "off", wantCopy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := newTestDeps(t, api.NewMockGeminiClient("recipe text"))
			td.cfg.CopyToClipboard = tt.fromCfg
			td.clipErr = tt.clipErr

			args := append([]string{"recipe"}, tt.args...)
			args = append(args, "onion=200")
			if err := td.run(t, args...); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			if tt.wantCopy {
				if len(td.clipboard) != 1 || td.clipboard[0] != "recipe text" {
					t.Errorf("clipboard = %v", td.clipboard)
				}
				if !strings.Contains(td.stderr.String(), tt.wantMsg) {
					t.Errorf("stderr = %q, want %q", td.stderr.String(), tt.wantMsg)
				}
			} else if len(td.clipboard) != 0 {
				t.Errorf("clipboard = %v, want untouched", td.clipboard)
			}
		})
	}
}

func TestRecipeCommand_NoNamedIngredient(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("x"))

	err := td.run(t, "recipe", "=200", "  ")
	if !errors.Is(err, chat.ErrNoIngredients) {
		t.Fatalf("err = %v, want ErrNoIngredients", err)
	}
	if td.mock.CallCount() != 0 {
		t.Error("endpoint must not be called")
	}
}

func TestRecipeCommand_ReportsFailure(t *testing.T) {
	cause := apierrors.NewAPIError(500, "https://example.test/models/x:generateContent", "internal")
	td := newTestDeps(t, api.NewMockGeminiClientWithError(cause))

	err := td.run(t, "recipe", "onion=200")
	if err == nil {
		t.Fatal("expected the failure to be reported")
	}
	if apierrors.GetHTTPStatus(err) != 500 {
		t.Errorf("error should wrap the API error, got %v", err)
	}
	if td.stdout.Len() != 0 {
		t.Errorf("nothing should be printed on failure, got %q", td.stdout.String())
	}
	if !strings.Contains(td.stderr.String(), "model request failed") {
		t.Errorf("failure should be logged to stderr, got %q", td.stderr.String())
	}
}

func TestRecordingClient(t *testing.T) {
	mock := api.NewMockGeminiClientWithError(errors.New("boom"))
	client := &recordingClient{GeminiClientInterface: mock}

	if _, err := client.GenerateContent(context.Background(), models.SingleTurn("x")); err == nil {
		t.Fatal("expected error")
	}
	if client.err() == nil {
		t.Error("error should be recorded")
	}

	mock.Err = nil
	mock.Reply = &models.Reply{Segments: []string{"ok"}}
	if _, err := client.GenerateContent(context.Background(), models.SingleTurn("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.err() != nil {
		t.Error("a success should clear the recorded error")
	}
}

func TestRecipeCommand_Output(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"markdown", "## シェフ\n\nrecipe text"},
		{"json", `"isIngredientList": true`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			td := newTestDeps(t, api.NewMockGeminiClient("recipe text"))
			path := filepath.Join(t.TempDir(), "out")

			if err := td.run(t, "recipe", "-o", path, "--format", tt.format, "onion=200"); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, data)
			}
			if td.stdout.Len() != 0 {
				t.Errorf("stdout should stay empty with --output, got %q", td.stdout.String())
			}
		})
	}
}

func TestRecipeCommand_BadFormat(t *testing.T) {
	td := newTestDeps(t, api.NewMockGeminiClient("x"))
	if err := td.run(t, "recipe", "--format", "pdf", "onion=200"); err == nil {
		t.Error("expected error for unknown format")
	}
	if td.mock.CallCount() != 0 {
		t.Error("endpoint must not be called for a bad format")
	}
}
