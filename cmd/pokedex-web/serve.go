package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbeier/pokedex-web/internal/mailer"
	"github.com/tbeier/pokedex-web/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			if listen != "" {
				app.cfg.Listen = listen
			}

			var m web.Mailer
			if app.cfg.MailEnabled() {
				built, err := mailer.New(mailer.Config{
					Host:     app.cfg.SMTP.Host,
					Port:     app.cfg.SMTP.Port,
					Username: app.cfg.SMTP.Username,
					Password: app.cfg.SMTP.Password,
					From:     app.cfg.SMTP.From,
				})
				if err != nil {
					return err
				}
				m = built
			} else {
				app.logger.Warn().Msg("SMTP not configured, email export disabled")
			}

			shell, err := web.New(app.service, m, web.Config{
				DefaultPageSize: app.cfg.Catalog.PageSize,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         app.cfg.Listen,
				Handler:      shell.Router(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 60 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				app.logger.Info().Msg("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					app.logger.Error().Err(err).Msg("Shutdown error")
				}
			}()

			app.logger.Info().
				Str("listen", app.cfg.Listen).
				Str("upstream", app.cfg.Upstream.BaseURL).
				Msg("Server starting")

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			app.logger.Info().Msg("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the YAML config file")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides the config value")

	return cmd
}
