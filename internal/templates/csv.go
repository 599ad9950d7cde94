// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package templates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// FileSuffix ends every per-project template listing.
const FileSuffix = "_templates.csv"

// ProjectFile returns the listing path of a project under dir.
func ProjectFile(dir, project string) string {
	return filepath.Join(dir, project+FileSuffix)
}

// ProjectFromFile returns the project name encoded in a listing file name,
// or "" when the name does not end in FileSuffix.
func ProjectFromFile(path string) string {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, FileSuffix) {
		return ""
	}
	return strings.TrimSuffix(base, FileSuffix)
}

// WriteCSV writes rows under the TemplateColumns header.
func WriteCSV(path string, rows []types.TemplateRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(types.TemplateColumns); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		rec := []string{r.TemplateID, r.DisplayName, string(r.Species), string(r.FileType), string(r.Role), r.Description}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", r.TemplateID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV reads a template listing. Columns are matched by header name so
// reordered files still load; missing columns read as empty strings.
func ReadCSV(path string) ([]types.TemplateRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx["template_id"]; !ok {
		return nil, fmt.Errorf("%s: missing template_id column", path)
	}
	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []types.TemplateRow
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, types.TemplateRow{
			TemplateID:  get(rec, "template_id"),
			DisplayName: get(rec, "display_name"),
			Species:     types.Species(get(rec, "species")),
			FileType:    types.FileType(get(rec, "file_type")),
			Role:        types.TemplateRole(strings.TrimSpace(get(rec, "configured_template_role"))),
			Description: get(rec, "description"),
		})
	}
	return rows, nil
}
