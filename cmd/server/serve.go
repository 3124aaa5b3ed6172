package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dfryer1193/wpgallery/internal/middleware"
	"github.com/dfryer1193/wpgallery/internal/rest"
	webhook "github.com/dfryer1193/wpgallery/webhook/http"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gallery web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close dependencies")
			}
		}()

		sections, err := a.sections()
		if err != nil {
			return fmt.Errorf("failed to load site content: %w", err)
		}

		site := rest.NewSite(rest.SiteConfig{
			Source:       a.client,
			Resolver:     a.resolver,
			Gallery:      a.galleryOptions(),
			Contact:      a.contact,
			Sections:     sections,
			SessionTTL:   cfg.Server.SessionTTL,
			FetchTimeout: cfg.Server.FetchTimeout,
			StaticDir:    cfg.Server.StaticDir,
		})
		defer func() {
			if err := site.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to gracefully close site")
			}
		}()

		if zerolog.GlobalLevel() > zerolog.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		r := gin.New()
		r.Use(middleware.LoggingMiddleware(), gin.CustomRecovery(middleware.HandlePanics()))
		rest.NewApi(r, site)

		switch {
		case cfg.Webhook.Secret == "":
			log.Info().Msg("Webhook secret not set, media webhook disabled")
		case a.cache == nil:
			log.Warn().Msg("Media cache disabled, media webhook has nothing to purge")
		default:
			h, err := webhook.NewWebhookHandler(cfg.Webhook.Secret, a.cache)
			if err != nil {
				return err
			}
			h.RegisterRoutes(r)
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: r,
		}

		serveErr := make(chan error, 1)
		go func() {
			log.Info().Msg("Starting server on port :" + fmt.Sprint(cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-serveErr:
			if err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
		case <-quit:
		}

		log.Info().Msg("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		log.Info().Msg("Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
