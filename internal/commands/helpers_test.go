package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/diogo/kondate/internal/api"
	"github.com/diogo/kondate/internal/config"
	"github.com/diogo/kondate/internal/models"
	"github.com/diogo/kondate/internal/recipe"
	"github.com/diogo/kondate/internal/render"
	"github.com/diogo/kondate/internal/tui"
)

// fakeTUI records what the commands hand to the terminal UI
type fakeTUI struct {
	chatCalls int
	session   tui.SessionInterface
	editor    *recipe.Editor
	modelName string
	opts      render.Options
	chatErr   error

	configCalls int
	configSeen  config.Config
}

func (f *fakeTUI) RunChat(ctx context.Context, session tui.SessionInterface, editor *recipe.Editor, modelName string, opts render.Options) error {
	f.chatCalls++
	f.session = session
	f.editor = editor
	f.modelName = modelName
	f.opts = opts
	return f.chatErr
}

func (f *fakeTUI) RunConfig(cfg config.Config) (config.Config, error) {
	f.configCalls++
	f.configSeen = cfg
	return cfg, nil
}

type testDeps struct {
	deps      *Dependencies
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	tui       *fakeTUI
	mock      *api.MockGeminiClient
	cfg       *config.Config
	gotKey    string
	gotModel  models.Model
	clipboard []string
	clipErr   error
}

func newTestDeps(t *testing.T, mock *api.MockGeminiClient) *testDeps {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range config.APIKeyEnvVars {
		t.Setenv(name, "")
	}
	t.Chdir(t.TempDir())

	cfg := config.DefaultConfig()
	cfg.APIKey = "config-key-1234"
	td := &testDeps{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		tui:    &fakeTUI{},
		mock:   mock,
		cfg:    &cfg,
	}
	td.deps = &Dependencies{
		LoadConfig: func() (config.Config, error) { return *td.cfg, nil },
		NewClient: func(apiKey string, cfg config.Config, model models.Model) (api.GeminiClientInterface, error) {
			td.gotKey = apiKey
			td.gotModel = model
			return td.mock, nil
		},
		TUI: td.tui,
		Clipboard: func(text string) error {
			td.clipboard = append(td.clipboard, text)
			return td.clipErr
		},
		IsTTY:  func() bool { return false },
		Stdout: td.stdout,
		Stderr: td.stderr,
	}
	return td
}

// run executes the command tree with args against td's dependencies
func (td *testDeps) run(t *testing.T, args ...string) error {
	t.Helper()
	return td.runContext(t, context.Background(), args...)
}

func (td *testDeps) runContext(t *testing.T, ctx context.Context, args ...string) error {
	t.Helper()
	cmd := NewRootCmd(td.deps)
	cmd.SetArgs(args)
	cmd.SetOut(td.stdout)
	cmd.SetErr(td.stderr)
	return cmd.ExecuteContext(ctx)
}
