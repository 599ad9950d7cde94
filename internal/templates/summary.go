// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package templates

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dca-graph/internal/projects"
	"github.com/pdiddy/dca-graph/pkg/types"
)

// RoleCounts tallies templates by configured role.
type RoleCounts struct {
	Total      int `json:"total" yaml:"total"`
	Annotation int `json:"annotation" yaml:"annotation"`
	Record     int `json:"record" yaml:"record"`
	NA         int `json:"na" yaml:"na"`
}

func (c *RoleCounts) add(o RoleCounts) {
	c.Total += o.Total
	c.Annotation += o.Annotation
	c.Record += o.Record
	c.NA += o.NA
}

// CountRoles tallies rows. Rows with a role outside the closed set count
// toward the total only.
func CountRoles(rows []types.TemplateRow) RoleCounts {
	var c RoleCounts
	for _, r := range rows {
		c.Total++
		switch r.Role {
		case types.RoleAnnotation:
			c.Annotation++
		case types.RoleRecord:
			c.Record++
		case types.RoleNone:
			c.NA++
		}
	}
	return c
}

// ProjectSummary is one row of the summary table.
type ProjectSummary struct {
	Project    string `json:"project" yaml:"project"`
	RoleCounts `yaml:",inline"`
}

// Summary covers every listing in a directory.
type Summary struct {
	Projects   []ProjectSummary `json:"projects" yaml:"projects"`
	GrandTotal RoleCounts       `json:"grand_total" yaml:"grand_total"`
}

// Summarize reads every *_templates.csv in dir, in name order. Demo
// projects are left out unless includeDemo is set.
func Summarize(dir string, includeDemo bool) (Summary, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+FileSuffix))
	if err != nil {
		return Summary{}, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(matches)

	var s Summary
	for _, path := range matches {
		project := ProjectFromFile(path)
		if !includeDemo && projects.IsDemo(project) {
			continue
		}
		rows, err := ReadCSV(path)
		if err != nil {
			return Summary{}, err
		}
		c := CountRoles(rows)
		s.Projects = append(s.Projects, ProjectSummary{Project: project, RoleCounts: c})
		s.GrandTotal.add(c)
	}
	return s, nil
}

// WriteMarkdown prints the summary as a Markdown table ending in a grand
// total row.
func (s Summary) WriteMarkdown(w io.Writer) {
	fmt.Fprintln(w, "| Project | Total | Annotation | Record | N/A |")
	fmt.Fprintln(w, "| --- | --- | --- | --- | --- |")
	for _, p := range s.Projects {
		fmt.Fprintf(w, "| %s | %d | %d | %d | %d |\n", p.Project, p.Total, p.Annotation, p.Record, p.NA)
	}
	g := s.GrandTotal
	fmt.Fprintf(w, "| Grand Total | %d | %d | %d | %d |\n", g.Total, g.Annotation, g.Record, g.NA)
}

// WriteYAML prints the summary as YAML.
func (s Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}
