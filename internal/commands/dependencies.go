package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/kondate/internal/api"
	"github.com/diogo/kondate/internal/config"
	"github.com/diogo/kondate/internal/models"
	"github.com/diogo/kondate/internal/recipe"
	"github.com/diogo/kondate/internal/render"
	"github.com/diogo/kondate/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, session tui.SessionInterface, editor *recipe.Editor, modelName string, opts render.Options) error
	RunConfig(cfg config.Config) (config.Config, error)
}

// ClientFactory builds a Gemini client from a resolved key and the config
type ClientFactory func(apiKey string, cfg config.Config, model models.Model) (api.GeminiClientInterface, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// LoadConfig reads the user configuration.
	LoadConfig func() (config.Config, error)

	// NewClient creates the Gemini API client.
	NewClient ClientFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard receives the recipe for `recipe --copy`.
	Clipboard func(text string) error

	// IsTTY reports whether stdout is a terminal.
	IsTTY func() bool

	Stdout io.Writer
	Stderr io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, session tui.SessionInterface, editor *recipe.Editor, modelName string, opts render.Options) error {
	return tui.RunChat(ctx, session, editor, modelName, opts)
}

func (d *DefaultTUI) RunConfig(cfg config.Config) (config.Config, error) {
	return tui.RunConfig(cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		LoadConfig: config.LoadConfig,
		NewClient:  newGeminiClient,
		TUI:        &DefaultTUI{},
		Clipboard:  clipboard.WriteAll,
		IsTTY:      isStdoutTTY,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

func newGeminiClient(apiKey string, cfg config.Config, model models.Model) (api.GeminiClientInterface, error) {
	return api.NewClient(apiKey,
		api.WithModel(model),
		api.WithEndpoint(cfg.Endpoint),
		api.WithTimeoutSeconds(cfg.TimeoutSeconds),
	)
}

// loadConfig returns the user configuration, falling back to defaults
func (d *Dependencies) loadConfig() config.Config {
	cfg, err := d.LoadConfig()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// client resolves the API key and builds the client for modelName
func (d *Dependencies) client(cfg config.Config, modelName string) (api.GeminiClientInterface, error) {
	key, _, err := config.ResolveAPIKey(apiKeyFlag, cfg)
	if err != nil {
		return nil, err
	}
	return d.NewClient(key, cfg, models.ModelFromName(modelName))
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
