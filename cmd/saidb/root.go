// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package main

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sourcedestination/saidb/internal/config"
	"github.com/sourcedestination/saidb/internal/ctxlog"
	"github.com/sourcedestination/saidb/internal/store"
	_ "github.com/sourcedestination/saidb/internal/store/mysql"
	_ "github.com/sourcedestination/saidb/internal/store/sqlite"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

// app carries the state shared by every subcommand of one root command.
type app struct {
	v *viper.Viper
}

// NewRootCmd creates the root saidb command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "saidb",
		Short:         "saidb: labeled multigraph store",
		Long:          "saidb stores labeled, directed multigraphs in MySQL or SQLite and finds them again by feature.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initViper(cmd); err != nil {
				return err
			}
			a.initLogging(cmd)
			return nil
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("backend", "", "storage backend (mysql or sqlite)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newInitCmd(),
		a.newAddCmd(),
		a.newGetCmd(),
		a.newDeleteCmd(),
		a.newIDsCmd(),
		a.newStatsCmd(),
		a.newFindCmd(),
		a.newServeCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper applies defaults, env bindings, flag bindings and an optional
// config file, giving flag > env > file > defaults precedence.
func (a *app) initViper(cmd *cobra.Command) error {
	v := a.v

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return saierr.Errorf(saierr.CodeConfigLoadReadFailure, "reading config file: %w", err)
		}
	} else {
		// SetConfigType is left unset so viper never matches the bare
		// ./saidb binary.
		v.SetConfigName("saidb")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/saidb")
		v.AddConfigPath("/etc/saidb")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return saierr.Errorf(saierr.CodeConfigLoadReadFailure, "reading config: %w", err)
			}
			if path := config.BootstrapConfig(); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return saierr.Errorf(saierr.CodeConfigLoadReadFailure, "reading bootstrapped config: %w", err)
				}
			}
		}
	}

	flags := cmd.Root().PersistentFlags()
	if f := flags.Lookup("backend"); f.Changed {
		if err := v.BindPFlag("storage.backend", f); err != nil {
			return saierr.Errorf(saierr.CodeCLISetupFailure, "binding backend flag: %w", err)
		}
	}
	if err := v.BindPFlag("verbose", flags.Lookup("verbose")); err != nil {
		return saierr.Errorf(saierr.CodeCLISetupFailure, "binding verbose flag: %w", err)
	}

	return nil
}

// initLogging installs a text handler on stderr and carries the logger in
// the command context.
func (a *app) initLogging(cmd *cobra.Command) {
	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

	config.WarnInsecurePermissions(a.v.ConfigFileUsed())
}

func (a *app) loadConfig() (*config.Config, error) {
	return config.FromViper(a.v)
}

// openStore connects to the configured backend. The caller closes it.
func (a *app) openStore(cmd *cobra.Command) (store.GraphStore, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cmd.Context(), &cfg.Storage)
}

// withStore runs fn against a freshly opened store and closes it afterwards.
func (a *app) withStore(cmd *cobra.Command, fn func(store.GraphStore) error) (err error) {
	st, err := a.openStore(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(st)
}

func parseGraphID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, saierr.New(saierr.CodeCLIInputInvalid, "graph id must be a positive integer",
			saierr.Field("arg", s))
	}
	return id, nil
}
