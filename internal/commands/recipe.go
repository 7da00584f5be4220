package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/kondate/internal/api"
	"github.com/diogo/kondate/internal/chat"
	"github.com/diogo/kondate/internal/export"
	"github.com/diogo/kondate/internal/logging"
	"github.com/diogo/kondate/internal/models"
	"github.com/diogo/kondate/internal/recipe"
	"github.com/diogo/kondate/internal/render"
)

var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)
)

// recordingClient remembers the last error so the one-shot command can
// report a failure the session only logs
type recordingClient struct {
	api.GeminiClientInterface

	mu      sync.Mutex
	lastErr error
}

func (c *recordingClient) GenerateContent(ctx context.Context, req models.GenerateRequest) (*models.Reply, error) {
	reply, err := c.GeminiClientInterface.GenerateContent(ctx, req)
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	return reply, err
}

func (c *recordingClient) err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// recipeOptions holds the flags of the recipe command
type recipeOptions struct {
	raw    bool
	copy   bool
	output string
	format string
}

// NewRecipeCmd creates the one-shot recipe command
func NewRecipeCmd(deps *Dependencies) *cobra.Command {
	var opts recipeOptions

	cmd := &cobra.Command{
		Use:   "recipe name[=grams]...",
		Short: "Print one recipe for the given ingredients",
		Long: `Request a single recipe and print it.

Each argument is an ingredient, optionally followed by its weight in grams:
  kondate recipe onion=200 carrot=50 egg

Output is rendered for the terminal unless --raw is set or stdout is
not a terminal.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecipe(cmd, deps, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the markdown without rendering")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the recipe to the clipboard")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the conversation to a file instead of printing it")
	cmd.Flags().StringVar(&opts.format, "format", "markdown", "Format for --output (markdown, json)")
	return cmd
}

func runRecipe(cmd *cobra.Command, deps *Dependencies, args []string, opts recipeOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	rows := make([]models.Ingredient, 0, len(args))
	for _, arg := range args {
		rows = append(rows, recipe.ParseArg(arg))
	}
	editor := recipe.NewEditorFrom(rows)
	if !editor.HasNamedIngredient() {
		return chat.ErrNoIngredients
	}

	cfg := deps.loadConfig()
	modelName := getModel(cfg)
	rawOutput := opts.raw || !deps.IsTTY()

	base, err := deps.client(cfg, modelName)
	if err != nil {
		return err
	}
	defer base.Close()
	client := &recordingClient{GeminiClientInterface: base}

	log := logging.New(cfg, verboseFlag, deps.Stderr)
	session := chat.NewSession(client, log)

	var spin *spinner
	if !rawOutput {
		spin = newSpinner(deps.Stderr, "Cooking up a recipe")
		spin.start()
	}

	if err := session.SubmitIngredients(cmd.Context(), editor); err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		return err
	}

	reply, ok := session.LastReply()
	if !ok {
		if spin != nil {
			spin.stopWithError()
		}
		if err := client.err(); err != nil {
			return fmt.Errorf("recipe request failed: %w", err)
		}
		return errors.New("recipe request failed")
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}

	if opts.copy || cfg.CopyToClipboard {
		if err := deps.Clipboard(reply.Text); err != nil {
			warn := lipgloss.NewStyle().Foreground(colorError).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(deps.Stderr, warn)
		} else {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		data, err := export.Render(export.Transcript{
			Model:      modelName,
			ExportedAt: time.Now(),
			Messages:   session.Messages(),
		}, format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Recipe saved to %s", opts.output),
		))
		return nil
	}

	if rawOutput {
		fmt.Fprintln(deps.Stdout, reply.Text)
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	renderOpts := render.FromConfig(cfg.Markdown).WithWidth(contentWidth)
	rendered, err := render.Markdown(reply.Text, renderOpts)
	if err != nil {
		log.WithField("error", err).Warn("markdown render failed")
		rendered = reply.Text
	}

	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("✦ "+reply.Label()))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(strings.TrimRight(rendered, "\n")))
	return nil
}
