// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sourcedestination/saidb/internal/ctxlog"
	"github.com/sourcedestination/saidb/internal/graphfile"
	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
	"github.com/sourcedestination/saidb/pkg/graph"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add FILE...",
		Short: "Store graphs read from YAML or JSON documents",
		Long:  "Store each graph document and print its assigned id. Use - to read one document from stdin.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st store.GraphStore) error {
				for _, path := range args {
					g, err := readGraph(cmd, path)
					if err != nil {
						return err
					}
					id, err := st.AddGraph(cmd.Context(), g)
					if err != nil {
						return saierr.With(err, saierr.Field("path", path))
					}
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", path, id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func readGraph(cmd *cobra.Command, path string) (*graph.Mutable, error) {
	if path != "-" {
		return graphfile.ReadFile(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, saierr.Wrap(err, saierr.CodeCLIInputInvalid, "reading stdin")
	}
	g, err := graphfile.Parse(data)
	if err != nil {
		return nil, saierr.With(err, saierr.Field("path", "-"))
	}
	return g, nil
}

func (a *app) newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Print a stored graph as a YAML or JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGraphID(args[0])
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("format")
			format, err := graphfile.ParseFormat(name)
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st store.GraphStore) error {
				g, err := st.GetGraph(cmd.Context(), id)
				if err != nil {
					return err
				}
				return graphfile.Encode(cmd.OutOrStdout(), g, format)
			})
		},
	}
	cmd.Flags().StringP("format", "f", string(graphfile.FormatYAML), "output format (yaml or json)")
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a graph and all of its nodes, edges and features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGraphID(args[0])
			if err != nil {
				return err
			}
			ifExists, _ := cmd.Flags().GetBool("if-exists")
			return a.withStore(cmd, func(st store.GraphStore) error {
				if !ifExists {
					return st.DeleteGraph(cmd.Context(), id)
				}
				deleted, err := st.DeleteGraphIfExists(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !deleted {
					ctxlog.FromContext(cmd.Context()).Info("graph did not exist", "graph_id", id)
				}
				return nil
			})
		},
	}
	cmd.Flags().Bool("if-exists", false, "succeed when the graph does not exist")
	return cmd
}
