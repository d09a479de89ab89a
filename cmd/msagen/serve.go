package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/avatarmsp/msagen/internal/server"
	"github.com/avatarmsp/msagen/pkg/agreement"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the agreement generation HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := zerolog.New(os.Stderr).With().Timestamp().Logger()

		tpl, err := loadTemplate(cfg, log)
		if err != nil {
			return err
		}

		preparer := agreement.Preparer{
			Name:  cfg.PreparerName,
			Email: cfg.PreparerEmail,
		}
		generator := agreement.NewGenerator(tpl)
		srv := server.New(generator, preparer, log)

		httpServer := &http.Server{
			Addr:              cfg.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.Addr).Msg("listening")
			errCh <- httpServer.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case sig := <-stop:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				return err
			}
		}

		return nil
	},
}
