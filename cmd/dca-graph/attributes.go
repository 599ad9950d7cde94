// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dca-graph/internal/attributes"
	"github.com/pdiddy/dca-graph/internal/classify"
	"github.com/pdiddy/dca-graph/internal/export"
)

var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "Export the attributes required by a set of templates",
	Long: `Attributes loads the data model and enrichment Turtle files, selects every
attribute required by a template of the chosen role set, looks up each
attribute's valid values, and writes CSV, JSON, and a datapackage.json
descriptor. Each output is read back and its row count checked.

Role sets: annotation (AnnotationTemplate), all (AnnotationTemplate and
UnconfiguredTemplate), record (RecordTemplate). Attribute totals differ
between role sets.`,
	RunE: runAttributes,
}

func runAttributes(cmd *cobra.Command, args []string) error {
	ec := cfg.Export
	stringFlag(cmd, "output", &ec.Output)
	intFlag(cmd, "sample", &ec.Sample)
	stringFlag(cmd, "role-set", &ec.RoleSet)
	intFlag(cmd, "progress-every", &ec.ProgressEvery)

	classes, err := attributes.Classes(ec.RoleSet)
	if err != nil {
		return err
	}

	store, err := openGraph(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	q, err := attributes.NewQuerier(store, ec.ProgressEvery)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	recs, err := q.Query(cmd.Context(), classes, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d attributes (role set: %s)\n", len(recs), ec.RoleSet)

	res, err := export.Write(ec.Output, ec.RoleSet, recs, w)
	if err != nil {
		return err
	}
	res.Stats.Write(w)
	export.PrintSample(w, recs, ec.Sample)
	return nil
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify exported attributes by sensitivity",
	Long: `Classify reads an attribute CSV written by the attributes command and
assigns each distinct label a sensitivity class by keyword: Red for likely
identifying fields, Yellow for fields sensitive in context, Green for the
rest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := cfg.Export.Output
		stringFlag(cmd, "input", &input)
		output, _ := cmd.Flags().GetString("output")

		recs, err := export.ReadCSV(input)
		if err != nil {
			return err
		}
		results, counts := classify.All(classify.Labels(recs))
		if err := classify.WriteFile(output, results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "classified: %d attributes (red %d, yellow %d, green %d) -> %s\n",
			counts.Total(), counts.Red, counts.Yellow, counts.Green, output)
		return nil
	},
}

func init() {
	addGraphFlags(attributesCmd)
	attributesCmd.Flags().StringP("output", "o", "", "CSV output path; JSON and datapackage.json are written beside it")
	attributesCmd.Flags().Int("sample", 10, "number of rows to print after export")
	attributesCmd.Flags().String("role-set", "", "template role set: annotation, all, or record")
	attributesCmd.Flags().Int("progress-every", 0, "print progress every N attributes")

	classifyCmd.Flags().String("input", "", "attribute CSV (default: attributes output)")
	classifyCmd.Flags().StringP("output", "o", "classified_attributes.csv", "classification CSV output path")

	rootCmd.AddCommand(attributesCmd)
	rootCmd.AddCommand(classifyCmd)
}
