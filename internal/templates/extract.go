// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package templates extracts the templates of each project's data model into
// a per-project CSV listing (species, file type, configured role) and
// summarizes those listings.
package templates

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/dca-graph/internal/fetch"
	"github.com/pdiddy/dca-graph/internal/infer"
	"github.com/pdiddy/dca-graph/internal/jsonld"
	"github.com/pdiddy/dca-graph/internal/role"
	"github.com/pdiddy/dca-graph/pkg/types"
)

// BatchResult holds counts from an extraction run.
type BatchResult struct {
	Extracted int
	Failed    int
	Rows      int
}

// Total returns the number of projects processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Failed
}

// HasFailures reports whether any project failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ProjectResult is the outcome of extracting one project.
type ProjectResult struct {
	Project   string
	Source    fetch.Source
	Templates int
	Rows      []types.TemplateRow
	Path      string

	// Unconfigured counts templates with no manifest schema entry. It stays
	// zero when the project has no template config at all.
	Unconfigured int
}

// Extractor turns data models into template listings.
type Extractor struct {
	client   *fetch.Client
	resolver *role.Resolver
	cfg      types.TemplatesConfig
}

// NewExtractor creates an extractor. Data models and template configs are
// read from the configured cache directories before any remote fetch.
func NewExtractor(client *fetch.Client, cfg types.TemplatesConfig) *Extractor {
	return &Extractor{
		client:   client,
		resolver: role.NewResolver(client, cfg.TemplateConfigsDir),
		cfg:      cfg,
	}
}

// BuildRows classifies templates against a project's configuration. Unless
// includeAll is set, unconfigured templates whose names look like single
// attributes are dropped.
func BuildRows(ts []types.Template, cfg role.Config, includeAll bool) []types.TemplateRow {
	rows := make([]types.TemplateRow, 0, len(ts))
	for _, t := range ts {
		in := infer.FromTemplate(t)
		m := cfg.Resolve(t)

		if !includeAll && m.Role == types.RoleNone && infer.DataType(in) == types.DataAttribute {
			continue
		}

		id := t.Label
		if id == "" {
			id = t.LocalName()
		}
		display := t.DisplayName
		if display == "" {
			display = id
		}

		rows = append(rows, types.TemplateRow{
			TemplateID:  id,
			DisplayName: display,
			Species:     infer.Species(in),
			FileType:    infer.FileType(m.Role, m.DisplayName, t.Label),
			Role:        m.Role,
			Description: t.Description,
		})
	}
	return rows
}

// ExtractProject loads one project's data model and template config and
// writes its listing to <output_dir>/<project>_templates.csv.
func (e *Extractor) ExtractProject(ctx context.Context, p types.Project, w io.Writer) (ProjectResult, error) {
	var model jsonld.Model
	local := filepath.Join(e.cfg.DataModelsDir, p.Name+"_data_model.jsonld")
	src, err := e.client.LocalFirst(ctx, local, p.DataModelURL, &model)
	if err != nil {
		return ProjectResult{}, fmt.Errorf("loading data model: %w", err)
	}

	tcfg := e.resolver.Load(ctx, p, w)
	ts := model.Templates()
	rows := BuildRows(ts, tcfg, e.cfg.IncludeAll)

	unconfigured := 0
	if tcfg.Available() {
		for _, t := range ts {
			if !tcfg.Resolve(t).Found {
				unconfigured++
			}
		}
	} else {
		fmt.Fprintf(w, "note: %s has no template config, all templates are N/A\n", p.Name)
	}

	path := ProjectFile(e.cfg.OutputDir, p.Name)
	if err := WriteCSV(path, rows); err != nil {
		return ProjectResult{}, err
	}

	return ProjectResult{
		Project:   p.Name,
		Source:    src,
		Templates: len(ts),
		Rows:      rows,
		Path:      path,

		Unconfigured: unconfigured,
	}, nil
}

// ExtractAll processes projects in order. A failing project is reported and
// skipped; the returned error covers only setup failures.
func (e *Extractor) ExtractAll(ctx context.Context, ps []types.Project, w io.Writer) (BatchResult, error) {
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory: %w", err)
	}

	var result BatchResult
	for _, p := range ps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		res, err := e.ExtractProject(ctx, p, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", p.Name, err)
			result.Failed++
			continue
		}
		result.Extracted++
		result.Rows += len(res.Rows)

		fmt.Fprintf(w, "extracted: %s (%d templates, %d rows, data model %s) -> %s\n",
			p.Name, res.Templates, len(res.Rows), res.Source, res.Path)
		if res.Unconfigured > 0 {
			fmt.Fprintf(w, "  %d of %d templates have no config entry\n", res.Unconfigured, res.Templates)
		}
		printBreakdown(w, res.Rows)
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed, %d template rows (total: %d)\n",
		result.Extracted, result.Failed, result.Rows, result.Total())
	return result, nil
}

// printBreakdown writes per-role counts and, for annotation templates, the
// file type distribution by descending count.
func printBreakdown(w io.Writer, rows []types.TemplateRow) {
	roles := make(map[types.TemplateRole]int)
	files := make(map[types.FileType]int)
	for _, r := range rows {
		roles[r.Role]++
		if r.Role == types.RoleAnnotation {
			files[r.FileType]++
		}
	}

	roleKeys := make([]string, 0, len(roles))
	for k := range roles {
		roleKeys = append(roleKeys, string(k))
	}
	sort.Strings(roleKeys)
	for _, k := range roleKeys {
		fmt.Fprintf(w, "  %s: %d\n", k, roles[types.TemplateRole(k)])
	}

	if len(files) == 0 {
		return
	}
	type count struct {
		ft types.FileType
		n  int
	}
	counts := make([]count, 0, len(files))
	for ft, n := range files {
		counts = append(counts, count{ft, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].ft < counts[j].ft
	})
	fmt.Fprintln(w, "  annotation file types:")
	for _, c := range counts {
		fmt.Fprintf(w, "    %s: %d\n", c.ft, c.n)
	}
}
