package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet-console/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath, nil)
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			if listen != "" {
				a.cfg.Listen = listen
			}

			h, err := router.NewRouter(router.Options{
				Catalog: a.catalog,
				Logger:  a.log,
				Title:   a.cfg.Title,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         a.cfg.Listen,
				Handler:      h,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				a.log.Info("starting server", map[string]any{"addr": srv.Addr, "catalog": a.cfg.Catalog.URL})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				a.log.Info("shutting down server", nil)
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(sctx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config and PORT)")
	return cmd
}
