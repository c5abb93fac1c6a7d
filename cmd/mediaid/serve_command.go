package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mediaid/internal/api"
)

const shutdownGrace = 10 * time.Second

func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the identification HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			rt, err := bootstrap(ctx, *configFlag)
			if err != nil {
				return err
			}
			defer rt.Close()

			server := api.NewServer(rt.identifier, rt.store, rt.log)
			httpServer := &http.Server{
				Addr:              rt.cfg.Bind,
				Handler:           server.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				rt.log.Info("http server listening", "addr", rt.cfg.Bind)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				rt.log.Info("shutting down")
				shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancelShutdown()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
