// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sourcedestination/saidb/internal/server"
	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  "Connect to the configured backend and serve the graph API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.withStore(cmd, func(st store.GraphStore) error {
				server.Version = version
				srv, err := server.New(server.Config{
					ListenAddr:   cfg.Server.Listen,
					CORSOrigins:  cfg.Server.CORSOrigins,
					ReadTimeout:  cfg.Server.ReadTimeout,
					WriteTimeout: cfg.Server.WriteTimeout,
				}, st)
				if err != nil {
					return err
				}
				return srv.Start(ctx)
			})
		},
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if f := cmd.Flags().Lookup("listen"); f.Changed {
			if err := a.v.BindPFlag("server.listen", f); err != nil {
				return saierr.Errorf(saierr.CodeCLISetupFailure, "binding listen flag: %w", err)
			}
		}
		return nil
	}

	return cmd
}
