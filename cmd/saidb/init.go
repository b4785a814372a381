// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

func (a *app) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Drop and recreate every table",
		Long:  "Drop and recreate the graph tables of the configured backend. All stored graphs are lost.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return saierr.New(saierr.CodeCLIInputInvalid, "init destroys every stored graph, pass --yes to confirm")
			}
			return a.withStore(cmd, func(st store.GraphStore) error {
				if err := st.InitializeDatabase(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "initialized %s database\n", st.Backend())
				return err
			})
		},
	}
	cmd.Flags().Bool("yes", false, "confirm that all stored graphs may be dropped")
	return cmd
}
