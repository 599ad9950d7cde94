// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dca-graph/internal/ask"
	"github.com/pdiddy/dca-graph/internal/vocab"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect the loaded triple store",
	Long: `Graph loads the data model and enrichment Turtle files and reports on
the result. With --db the store is kept in a SQLite file and reloaded only
when a Turtle file changes.`,
}

var graphStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print triple, predicate, and class counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		store, err := openGraph(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		st, err := store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		for i := range st.Predicates {
			st.Predicates[i].Predicate = vocab.Shorten(st.Predicates[i].Predicate)
		}
		for i := range st.Classes {
			st.Classes[i].Class = vocab.Shorten(st.Classes[i].Class)
		}

		w := cmd.OutOrStdout()
		switch format {
		case "yaml", "":
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(st); err != nil {
				return err
			}
			return enc.Close()
		case "json":
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

var graphExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write graph statistics to a YAML or JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		store, err := openGraph(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		switch strings.ToLower(filepath.Ext(output)) {
		case ".yaml", ".yml":
			err = store.ExportYAML(cmd.Context(), output)
		case ".json":
			err = store.ExportJSON(cmd.Context(), output)
		default:
			return fmt.Errorf("unsupported output %q: use a .yaml or .json file", output)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
		return nil
	},
}

var graphQueryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Run a read-only SQL query over the triples table",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")
		store, err := openGraph(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		rs, err := store.Select(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		return ask.Write(cmd.OutOrStdout(), rs, format)
	},
}

func init() {
	for _, c := range []*cobra.Command{graphStatsCmd, graphExportCmd, graphQueryCmd} {
		addGraphFlags(c)
		graphCmd.AddCommand(c)
	}
	graphStatsCmd.Flags().String("format", "yaml", "output format: yaml or json")
	graphExportCmd.Flags().StringP("output", "o", "graph_stats.yaml", "output file (.yaml or .json)")
	graphQueryCmd.Flags().String("format", "table", "output format: table, csv, or json")
	graphQueryCmd.Flags().Int("limit", 0, "maximum rows (0 = all)")

	rootCmd.AddCommand(graphCmd)
}
