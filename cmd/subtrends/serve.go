package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trendlab/subreddit-trends/internal/catalog"
	"github.com/trendlab/subreddit-trends/internal/dashboard"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the trends dashboard",
	Long: `Starts an HTTP server with score-trend charts over saved scrapes and
a JSON listing of the catalog.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Server.Port
		}
		cfg.Server.Port = port
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		cat, err := catalog.Open(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		defer cat.Close()
		if err := cat.Migrate(ctx); err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: dashboard.NewServer(cat).Router(),
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("dashboard listening", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return eris.Wrap(err, "serve")
		case <-ctx.Done():
			zap.L().Info("shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (defaults to server.port)")
	rootCmd.AddCommand(serveCmd)
}
