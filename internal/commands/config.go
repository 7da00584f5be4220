package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/diogo/kondate/internal/config"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the settings kondate will use and where they come from.
The API key is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.loadConfig()
			return printConfig(deps.Stdout, cfg)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open the interactive settings menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := deps.TUI.RunConfig(deps.loadConfig())
			return err
		},
	})

	return cmd
}

func printConfig(w io.Writer, cfg config.Config) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	key, source, _ := config.ResolveAPIKey(apiKeyFlag, cfg)

	timeout := "none"
	if cfg.TimeoutSeconds > 0 {
		timeout = fmt.Sprintf("%ds", cfg.TimeoutSeconds)
	}

	rows := []struct {
		label string
		value string
	}{
		{"config file", path},
		{"model", getModel(cfg)},
		{"endpoint", cfg.Endpoint},
		{"api key", fmt.Sprintf("%s (%s)", config.MaskKey(key), source)},
		{"timeout", timeout},
		{"log level", cfg.LogLevel},
		{"listen", cfg.Listen},
		{"tui theme", cfg.TUITheme},
		{"markdown style", cfg.Markdown.Style},
		{"copy to clipboard", fmt.Sprintf("%t", cfg.CopyToClipboard)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-18s %s\n", row.label+":", row.value); err != nil {
			return err
		}
	}
	return nil
}
