// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert writes Turtle files from project inputs: JSON-LD data
// models become <project>_data_model.ttl and template listings become
// <project>_enrichment.ttl. Both run through the same batch loop.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/dca-graph/internal/projects"
	"github.com/pdiddy/dca-graph/pkg/types"
)

// Converter turns one project input file into Turtle text. An empty result
// with a nil error means the input had nothing to convert.
type Converter interface {
	Convert(project, inPath string) (string, error)
}

// Layout names the input and output files of a conversion.
type Layout struct {
	InputDir     string
	InputSuffix  string
	OutputDir    string
	OutputSuffix string
}

// DataModelLayout maps data_models/<P>_data_model.jsonld to
// <out>/<P>_data_model.ttl.
func DataModelLayout(cfg types.ConvertConfig) Layout {
	return Layout{
		InputDir:     cfg.DataModelsDir,
		InputSuffix:  "_data_model.jsonld",
		OutputDir:    cfg.OutputDir,
		OutputSuffix: "_data_model.ttl",
	}
}

// EnrichmentLayout maps <templates>/<P>_templates.csv to
// <out>/<P>_enrichment.ttl.
func EnrichmentLayout(cfg types.EnrichConfig) Layout {
	return Layout{
		InputDir:     cfg.TemplatesDir,
		InputSuffix:  "_templates.csv",
		OutputDir:    cfg.OutputDir,
		OutputSuffix: "_enrichment.ttl",
	}
}

// Projects lists the projects with an input file, sorted by name.
func (l Layout) Projects() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(l.InputDir, "*"+l.InputSuffix))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", l.InputDir, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), l.InputSuffix))
	}
	sort.Strings(names)
	return names, nil
}

func (l Layout) input(project string) string {
	return filepath.Join(l.InputDir, project+l.InputSuffix)
}

func (l Layout) output(project string) string {
	return filepath.Join(l.OutputDir, project+l.OutputSuffix)
}

// Status is the outcome of converting one project.
type Status int

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusFailed
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of projects processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any project failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Options controls a batch run.
type Options struct {
	// Filter selects projects; demo projects are skipped by default.
	Filter projects.Filter

	// Force rewrites outputs that are newer than their input.
	Force bool
}

// ConvertProject converts a single project's input, writing the Turtle file
// to the layout's output directory.
func ConvertProject(c Converter, l Layout, project string, force bool, w io.Writer) Status {
	in := l.input(project)
	out := l.output(project)

	if !force {
		changed, err := hasChanged(in, out)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", project, err)
			return StatusFailed
		}
		if !changed {
			fmt.Fprintf(w, "skipped: %s (up to date)\n", project)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(l.OutputDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", project, err)
		return StatusFailed
	}

	ttl, err := c.Convert(project, in)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", project, err)
		return StatusFailed
	}
	if ttl == "" {
		fmt.Fprintf(w, "skipped: %s (nothing to convert)\n", project)
		return StatusSkipped
	}

	if err := os.WriteFile(out, []byte(ttl), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", project, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", project, out)
	return StatusConverted
}

// ConvertAll converts every project with an input file, printing per-project
// status to w and returning a summary. It fails only when no input matches.
func ConvertAll(c Converter, l Layout, opts Options, w io.Writer) (BatchResult, error) {
	names, err := l.Projects()
	if err != nil {
		return BatchResult{}, err
	}
	if len(names) == 0 {
		return BatchResult{}, fmt.Errorf("no *%s files in %s", l.InputSuffix, l.InputDir)
	}

	selected, ignored := opts.Filter.Names(names)
	if opts.Filter.Only != "" && len(selected) == 0 {
		return BatchResult{}, fmt.Errorf("no %s%s in %s", opts.Filter.Only, l.InputSuffix, l.InputDir)
	}

	var result BatchResult
	for _, name := range ignored {
		fmt.Fprintf(w, "skipped: %s (ignored)\n", name)
		result.Skipped++
	}
	for _, name := range selected {
		switch ConvertProject(c, l, name, opts.Force, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// hasChanged reports whether the input is newer than the output, or the
// output does not exist yet.
func hasChanged(inPath, outPath string) (bool, error) {
	inInfo, err := os.Stat(inPath)
	if err != nil {
		return false, fmt.Errorf("stat input %s: %w", inPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	return inInfo.ModTime().After(outInfo.ModTime()), nil
}
