// Package commands provides CLI commands for kondate.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/kondate/internal/config"
)

var (
	// Global flags
	modelFlag   string
	apiKeyFlag  string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kondate",
		Short: "Recipe suggestions from the ingredients you have",
		Long: `kondate asks Gemini for a recipe built from the ingredients you enter,
then lets you keep chatting about it.

Examples:
  kondate                               Start the interactive form
  kondate chat                          Same as above
  kondate serve --listen :8080          Serve the form in a browser
  kondate recipe onion=200 carrot=50    Print one recipe and exit
  kondate config                        Show the effective settings`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "kondate %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runChat(cmd, deps)
		},
	}

	cmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g., gemini-1.5-flash)")
	cmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Gemini API key (overrides environment and config)")
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log at debug level")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewServeCmd(deps))
	cmd.AddCommand(NewRecipeCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "kondate"))
		os.Exit(1)
	}
}

// getModel returns the model to use (from flag or config)
func getModel(cfg config.Config) string {
	if modelFlag != "" {
		return modelFlag
	}
	if cfg.Model != "" {
		return cfg.Model
	}
	return config.DefaultConfig().Model
}
