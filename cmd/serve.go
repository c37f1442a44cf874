package cmd

import (
	"os/signal"
	"syscall"

	"github.com/bnema/page-push/internal/adapters/notify"
	"github.com/bnema/page-push/internal/adapters/transport/httpbridge"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var (
		listenAddr     string
		allowedOrigins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the getSummary/saveToNotion message bridge over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			gin.SetMode(gin.ReleaseMode)
			dispatcher := app.newDispatcher(notify.Log{Logger: app.logger})
			router := httpbridge.NewRouter(dispatcher, app.logger, allowedOrigins...)

			return httpbridge.Serve(ctx, listenAddr, router, app.logger)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", app.listenAddr, "Listen address")
	cmd.Flags().StringSliceVar(&allowedOrigins, "allow-origin", app.allowedOrigins, "Extra browser origin allowed to call the bridge (extension origins are always allowed)")

	return cmd
}
