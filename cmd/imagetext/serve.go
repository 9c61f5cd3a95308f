package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/imagetext/auth"
	"github.com/Abraxas-365/imagetext/extractx"
	"github.com/Abraxas-365/imagetext/logx"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the handler over HTTP for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := extractx.LoadSettings()
			if err != nil {
				return err
			}
			if port == 0 {
				port = settings.ServerPort
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pipeline, err := extractx.Build(ctx, settings)
			if err != nil {
				return err
			}

			var tokens *auth.TokenService
			if settings.JWTSecret != "" {
				tokens, err = auth.NewTokenService(settings.JWTSecret, time.Hour)
				if err != nil {
					return err
				}
			}

			app := extractx.NewApp(extractx.NewHandler(pipeline), tokens)

			errCh := make(chan error, 1)
			go func() {
				logx.Info("listening on :%d (provider=%s, auth=%t)", port, pipeline.Provider(), tokens != nil)
				errCh <- app.Listen(fmt.Sprintf(":%d", port))
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logx.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default SERVER_PORT or 8080)")
	return cmd
}
