package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/kondate/internal/chat"
	"github.com/diogo/kondate/internal/logging"
	"github.com/diogo/kondate/internal/recipe"
	"github.com/diogo/kondate/internal/render"
	"github.com/diogo/kondate/internal/tui"
)

// NewChatCmd creates the interactive form + chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive ingredient form and chat",
		Long: `Start the full-screen ingredient form. Submit it to get a recipe,
then keep asking follow-up questions about that recipe.

Press Ctrl+R to start over and Ctrl+C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps)
		},
	}
}

func runChat(cmd *cobra.Command, deps *Dependencies) error {
	cfg := deps.loadConfig()
	modelName := getModel(cfg)

	client, err := deps.client(cfg, modelName)
	if err != nil {
		return err
	}
	defer client.Close()

	// The TUI owns the terminal, so diagnostics go to the log file
	log, closer, err := logging.NewFile(cfg, verboseFlag)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v, logging disabled\n", err)
		log = logging.Discard()
	} else {
		defer closer.Close()
	}
	log.WithField("model", modelName).Info("starting chat")

	if render.SetTUITheme(cfg.TUITheme) {
		tui.UpdateTheme()
	}

	session := chat.NewSession(client, log)
	opts := render.FromConfig(cfg.Markdown)

	return deps.TUI.RunChat(cmd.Context(), session, recipe.NewEditor(), modelName, opts)
}
