package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diogo/kondate/internal/chat"
	"github.com/diogo/kondate/internal/logging"
	"github.com/diogo/kondate/internal/recipe"
	"github.com/diogo/kondate/internal/web"
)

// NewServeCmd creates the web server command
func NewServeCmd(deps *Dependencies) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ingredient form over HTTP",
		Long: `Serve the ingredient form and recipe chat as a web page.

The server keeps a single conversation shared by every browser tab.
Stop it with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.loadConfig()
			modelName := getModel(cfg)
			if listen == "" {
				listen = cfg.Listen
			}

			client, err := deps.client(cfg, modelName)
			if err != nil {
				return err
			}
			defer client.Close()

			log := logging.New(cfg, verboseFlag, deps.Stderr)
			log.WithField("model", modelName).Info("starting server")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := web.NewServer(chat.NewSession(client, log), recipe.NewEditor(), modelName, log)
			return srv.ListenAndServe(ctx, listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on (default from config, 127.0.0.1:8080)")
	return cmd
}
