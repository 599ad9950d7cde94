// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dca-graph/internal/fetch"
	"github.com/pdiddy/dca-graph/internal/projects"
	"github.com/pdiddy/dca-graph/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Extract and classify the templates of every project",
	Long: `Templates reads the master project file (or rebuilds it from the
dca_config.json files with --discover), loads each project's data model and
template configuration, local copies first, and writes one
<PROJECT>_templates.csv per project with the inferred species, file type,
and configured role of each template.

A project whose data model cannot be loaded is reported and skipped. A
missing template configuration marks that project's templates N/A.`,
	RunE: runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	tc := cfg.Templates
	stringFlag(cmd, "master-file", &tc.MasterFile)
	stringFlag(cmd, "projects-root", &tc.ProjectsRoot)
	stringFlag(cmd, "output-dir", &tc.OutputDir)
	boolFlag(cmd, "include-all", &tc.IncludeAll)
	discover, _ := cmd.Flags().GetBool("discover")

	w := cmd.OutOrStdout()
	all, err := projects.Index(tc.MasterFile, tc.ProjectsRoot, discover, w)
	if err != nil {
		return err
	}
	selected, skipped, err := projectFilter(cmd).Apply(all)
	if err != nil {
		return err
	}
	if len(skipped) > 0 {
		fmt.Fprintf(w, "skipping: %s\n", strings.Join(skipped, ", "))
	}

	ex := templates.NewExtractor(fetch.New(tc.HTTPConfig), tc)
	result, err := ex.ExtractAll(cmd.Context(), selected, w)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d project(s) failed extraction", result.Failed)
	}
	return nil
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize template roles per project",
	Long: `Summarize counts the Annotation, Record, and N/A templates in every
template listing and prints a table with a grand total. Demo projects are
left out unless --include-demo is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Templates.OutputDir
		stringFlag(cmd, "dir", &dir)
		includeDemo, _ := cmd.Flags().GetBool("include-demo")
		format, _ := cmd.Flags().GetString("format")

		s, err := templates.Summarize(dir, includeDemo)
		if err != nil {
			return err
		}
		if len(s.Projects) == 0 {
			return fmt.Errorf("no *%s files in %s", templates.FileSuffix, dir)
		}
		switch format {
		case "md", "markdown", "":
			s.WriteMarkdown(cmd.OutOrStdout())
			return nil
		case "yaml":
			return s.WriteYAML(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q: use md or yaml", format)
		}
	},
}

func init() {
	addProjectFlags(templatesCmd)
	templatesCmd.Flags().Bool("include-all", false, "keep attribute-like templates in the listing")
	templatesCmd.Flags().Bool("discover", false, "rebuild the master file from dca_config.json files")
	templatesCmd.Flags().String("master-file", "", "CSV mapping projects to data model and template config URLs")
	templatesCmd.Flags().String("projects-root", "", "directory scanned for <project>/dca_config.json")
	templatesCmd.Flags().String("output-dir", "", "directory for <PROJECT>_templates.csv files")

	summarizeCmd.Flags().String("dir", "", "directory of template listings (default: templates output dir)")
	summarizeCmd.Flags().Bool("include-demo", false, "include demo projects")
	summarizeCmd.Flags().String("format", "md", "output format: md or yaml")

	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(summarizeCmd)
}
