// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package projects maintains the master index mapping project names to their
// data model and template config URLs.
package projects

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// Master file columns.
const (
	ColProject        = "Project"
	ColDataModelURL   = "Data Model URL"
	ColTemplateConfig = "Template Config URL"
)

// MasterColumns is the header written to the master file.
var MasterColumns = []string{ColProject, ColDataModelURL, ColTemplateConfig}

// DefaultIgnore lists the projects skipped unless the caller clears it.
var DefaultIgnore = []string{"demo", "demo_upsert"}

// IsDemo reports whether name is one of the demo projects.
func IsDemo(name string) bool {
	for _, d := range DefaultIgnore {
		if name == d {
			return true
		}
	}
	return false
}

// ReadMaster loads the master CSV. Rows without a project name are dropped.
// A missing Template Config URL column is tolerated and leaves the field
// empty.
func ReadMaster(path string) ([]types.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening master file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("master file %s is empty", path)
		}
		return nil, fmt.Errorf("reading master header: %w", err)
	}
	idx := columnIndex(header)
	if _, ok := idx[ColProject]; !ok {
		return nil, fmt.Errorf("master file %s has no %q column", path, ColProject)
	}

	var out []types.Project
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading master file: %w", err)
		}
		p := types.Project{
			Name:              field(rec, idx, ColProject),
			DataModelURL:      field(rec, idx, ColDataModelURL),
			TemplateConfigURL: field(rec, idx, ColTemplateConfig),
		}
		if p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// WriteMaster persists the project index.
func WriteMaster(path string, ps []types.Project) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating master directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating master file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(MasterColumns); err != nil {
		f.Close()
		return fmt.Errorf("writing master header: %w", err)
	}
	for _, p := range ps {
		if err := w.Write([]string{p.Name, p.DataModelURL, p.TemplateConfigURL}); err != nil {
			f.Close()
			return fmt.Errorf("writing master row %s: %w", p.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing master file: %w", err)
	}
	return f.Close()
}

// dcaConfig is the subset of a project's dca_config.json we read.
type dcaConfig struct {
	DCC struct {
		DataModelURL       string `json:"data_model_url"`
		TemplateMenuConfig string `json:"template_menu_config_file"`
	} `json:"dcc"`
}

// Discover scans root/*/dca_config.json and returns one project per config
// that names a data model URL, sorted by name. Demo projects are skipped.
// A config that cannot be read or parsed is reported to w and skipped.
func Discover(root string, w io.Writer) ([]types.Project, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*", "dca_config.json"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(matches)

	var out []types.Project
	for _, path := range matches {
		name := filepath.Base(filepath.Dir(path))
		if IsDemo(name) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "skipped: %s (reading %s: %v)\n", name, path, err)
			continue
		}
		var cfg dcaConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			fmt.Fprintf(w, "skipped: %s (parsing %s: %v)\n", name, path, err)
			continue
		}
		if cfg.DCC.DataModelURL == "" {
			continue
		}
		out = append(out, types.Project{
			Name:              name,
			DataModelURL:      cfg.DCC.DataModelURL,
			TemplateConfigURL: cfg.DCC.TemplateMenuConfig,
		})
	}
	return out, nil
}

// FillTemplateConfigs sets missing template config URLs from discovered
// projects with the same name.
func FillTemplateConfigs(ps []types.Project, discovered []types.Project) {
	byName := make(map[string]string, len(discovered))
	for _, d := range discovered {
		byName[d.Name] = d.TemplateConfigURL
	}
	for i := range ps {
		if ps[i].TemplateConfigURL == "" {
			ps[i].TemplateConfigURL = byName[ps[i].Name]
		}
	}
}

// Filter selects the projects to process.
type Filter struct {
	// Only restricts processing to a single project when set.
	Only string

	// Ignore lists extra projects to skip. The value "none" clears the
	// default demo exclusions.
	Ignore []string
}

// IgnoreSet returns the effective set of ignored project names.
func (f Filter) IgnoreSet() map[string]bool {
	set := make(map[string]bool)
	for _, d := range DefaultIgnore {
		set[d] = true
	}
	for _, v := range f.Ignore {
		if strings.EqualFold(v, "none") {
			clear(set)
			continue
		}
		set[v] = true
	}
	return set
}

// Apply returns the selected projects and the names that were skipped.
// When Only is set, the ignore list does not apply; an unknown name is an
// error.
func (f Filter) Apply(ps []types.Project) (selected []types.Project, skipped []string, err error) {
	if f.Only != "" {
		for _, p := range ps {
			if p.Name == f.Only {
				return []types.Project{p}, nil, nil
			}
		}
		return nil, nil, fmt.Errorf("project %q not found", f.Only)
	}

	ignore := f.IgnoreSet()
	for _, p := range ps {
		if ignore[p.Name] {
			skipped = append(skipped, p.Name)
			continue
		}
		selected = append(selected, p)
	}
	return selected, skipped, nil
}

// Names applies the filter to bare project names, as found from file names.
func (f Filter) Names(names []string) (selected, skipped []string) {
	if f.Only != "" {
		for _, n := range names {
			if n == f.Only {
				return []string{n}, nil
			}
		}
		return nil, nil
	}
	ignore := f.IgnoreSet()
	for _, n := range names {
		if ignore[n] {
			skipped = append(skipped, n)
			continue
		}
		selected = append(selected, n)
	}
	return selected, skipped
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func field(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// Index returns the project list for a run. When rediscover is set, or the
// master file does not exist yet, the list is rebuilt from the dca_config.json
// files under root and written back to master. Otherwise the master file is
// read and rows lacking a template config URL are completed from discovery.
func Index(master, root string, rediscover bool, w io.Writer) ([]types.Project, error) {
	if !rediscover {
		if _, err := os.Stat(master); errors.Is(err, os.ErrNotExist) {
			rediscover = true
		}
	}

	if rediscover {
		ps, err := Discover(root, w)
		if err != nil {
			return nil, err
		}
		if len(ps) == 0 {
			return nil, fmt.Errorf("no dca_config.json with a data model URL under %s", root)
		}
		if err := WriteMaster(master, ps); err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "master file: %s (%d projects discovered)\n", master, len(ps))
		return ps, nil
	}

	ps, err := ReadMaster(master)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("no projects found in %s", master)
	}

	missing := slices.ContainsFunc(ps, func(p types.Project) bool { return p.TemplateConfigURL == "" })
	if missing {
		discovered, err := Discover(root, w)
		if err != nil {
			fmt.Fprintf(w, "warning: template config discovery failed (%v)\n", err)
		} else {
			FillTemplateConfigs(ps, discovered)
		}
	}
	return ps, nil
}
