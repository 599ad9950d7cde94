// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/dca-graph/internal/graph"
	"github.com/pdiddy/dca-graph/internal/projects"
	"github.com/pdiddy/dca-graph/pkg/types"
)

// addProjectFlags registers the shared project selection flags.
func addProjectFlags(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "process only this project")
	cmd.Flags().StringArray("ignore-project", nil, "skip a project (repeatable; \"none\" clears the default demo exclusions)")
}

func projectFilter(cmd *cobra.Command) projects.Filter {
	only, _ := cmd.Flags().GetString("project")
	ignore, _ := cmd.Flags().GetStringArray("ignore-project")
	return projects.Filter{Only: only, Ignore: ignore}
}

// stringFlag overrides *dst with the named flag when it was set.
func stringFlag(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}

func intFlag(cmd *cobra.Command, name string, dst *int) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetInt(name)
	}
}

func boolFlag(cmd *cobra.Command, name string, dst *bool) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetBool(name)
	}
}

// addGraphFlags registers the flags that locate the Turtle inputs.
func addGraphFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-dir", "", "directory of data model Turtle files")
	cmd.Flags().String("enrichment-dir", "", "directory of enrichment Turtle files")
	cmd.Flags().String("db", "", "SQLite file to persist the graph in (default: in memory)")
}

func graphConfig(cmd *cobra.Command) types.GraphConfig {
	gc := cfg.Graph
	stringFlag(cmd, "base-dir", &gc.BaseDir)
	stringFlag(cmd, "enrichment-dir", &gc.EnrichmentDir)
	stringFlag(cmd, "db", &gc.DBPath)
	return gc
}

// openGraph opens the store and loads both Turtle directories into it.
// Files that fail to parse are reported and skipped.
func openGraph(cmd *cobra.Command) (*graph.Store, error) {
	gc := graphConfig(cmd)
	store, err := graph.Open(gc)
	if err != nil {
		return nil, err
	}
	summary, err := store.LoadDirs(cmd.Context(), cmd.OutOrStdout(), gc.BaseDir, gc.EnrichmentDir)
	if err != nil {
		store.Close()
		return nil, err
	}
	if summary.HasFailures() {
		logger.Warn("some Turtle files failed to load", "failed", summary.Failed)
	}
	return store, nil
}
