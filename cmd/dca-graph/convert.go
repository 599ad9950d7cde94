// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dca-graph/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert JSON-LD data models to Turtle",
	Long: `Convert reads data_models/<PROJECT>_data_model.jsonld files and writes one
Turtle file per project, with every class and property moved into the
project's namespace. Outputs newer than their input are skipped unless
--force is given.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cc := cfg.Convert
	stringFlag(cmd, "input-dir", &cc.DataModelsDir)
	stringFlag(cmd, "output-dir", &cc.OutputDir)
	force, _ := cmd.Flags().GetBool("force")

	result, err := convert.ConvertAll(convert.DataModel{}, convert.DataModelLayout(cc),
		convert.Options{Filter: projectFilter(cmd), Force: force}, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d project(s) failed conversion", result.Failed)
	}
	return nil
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Convert template listings to enrichment Turtle",
	Long: `Enrich reads template_outputs/<PROJECT>_templates.csv and asserts each
template's role class, species, and file type on its IRI in the project
namespace. Run templates first.`,
	RunE: runEnrich,
}

func runEnrich(cmd *cobra.Command, args []string) error {
	ec := cfg.Enrich
	stringFlag(cmd, "input-dir", &ec.TemplatesDir)
	stringFlag(cmd, "output-dir", &ec.OutputDir)
	force, _ := cmd.Flags().GetBool("force")

	result, err := convert.ConvertAll(convert.Enrichment{}, convert.EnrichmentLayout(ec),
		convert.Options{Filter: projectFilter(cmd), Force: force}, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d project(s) failed enrichment", result.Failed)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{convertCmd, enrichCmd} {
		addProjectFlags(c)
		c.Flags().String("input-dir", "", "input directory (overrides config)")
		c.Flags().String("output-dir", "", "output directory (overrides config)")
		c.Flags().Bool("force", false, "rewrite outputs that are up to date")
		rootCmd.AddCommand(c)
	}
}
