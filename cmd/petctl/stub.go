package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"battlepets/petlookup"
	"battlepets/petstub"
)

func newStubCmd() *cobra.Command {
	var (
		listen   string
		fixture  string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "stub [--listen <addr>] [--fixture <pets.yaml>]",
		Short: "Serve a local battle pet service from a fixture.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := petlookup.NewLogger(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return err
			}

			f := petstub.DefaultFixture()
			if fixture != "" {
				if f, err = petstub.LoadFixture(fixture); err != nil {
					return err
				}
			}

			srv := &http.Server{
				Addr:              listen,
				Handler:           petstub.NewServer(f, log).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				log.Info("serving battle pets", "addr", listen, "pets", len(f.Pets))
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			log.Info("stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8000", "address to listen on")
	cmd.Flags().StringVar(&fixture, "fixture", "", "YAML fixture of pets (default: built-in set)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}
