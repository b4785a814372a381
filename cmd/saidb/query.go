// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcedestination/saidb/internal/store"
)

func (a *app) newIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ids",
		Short: "Print every stored graph id in ascending order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd, func(st store.GraphStore) error {
				out := cmd.OutOrStdout()
				for id, err := range st.StreamGraphIDs(cmd.Context()) {
					if err != nil {
						return err
					}
					if _, err := fmt.Fprintln(out, id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print graph, node and edge counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd, func(st store.GraphStore) error {
				ctx := cmd.Context()
				graphs, err := st.CountGraphs(ctx)
				if err != nil {
					return err
				}
				nodes, err := st.CountNodes(ctx)
				if err != nil {
					return err
				}
				edges, err := st.CountEdges(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(),
					"backend:    %s\ngraphs:     %d\nnodes:      %d\nedges:      %d\nstatements: %s\n",
					st.Backend(), graphs, nodes, edges, st.Stats())
				return err
			})
		},
	}
}

func (a *app) newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME [VALUE]",
		Short: "Print ids of graphs carrying a feature on the graph, a node, or an edge",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st store.GraphStore) error {
				var (
					ids []int64
					err error
				)
				if len(args) == 2 {
					ids, err = st.FindGraphsWithFeature(cmd.Context(), args[0], args[1])
				} else {
					ids, err = st.FindGraphsWithFeatureName(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				for _, id := range ids {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
