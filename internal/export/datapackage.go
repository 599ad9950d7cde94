// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/frictionlessdata/datapackage-go/datapackage"
	"github.com/frictionlessdata/datapackage-go/validator"
	"github.com/google/uuid"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// DescriptorFile is the data package descriptor written next to the outputs.
const DescriptorFile = "datapackage.json"

var invalidName = regexp.MustCompile(`[^a-z0-9._-]+`)

// resourceName lowercases a file stem into a valid resource name.
func resourceName(path, suffix string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return invalidName.ReplaceAllString(strings.ToLower(stem), "-") + suffix
}

var fieldDescriptions = map[string]string{
	"attribute_id":     "Prefixed attribute IRI",
	"label":            "Attribute label",
	"description":      "Attribute description",
	"validation_rules": "Validation rules joined by commas",
	"valid_values":     "Enumerated valid values joined by commas",
}

func fieldSchema() map[string]any {
	fields := make([]any, 0, len(types.AttributeColumns))
	for _, c := range types.AttributeColumns {
		fields = append(fields, map[string]any{
			"name":        c,
			"type":        "string",
			"description": fieldDescriptions[c],
		})
	}
	return map[string]any{
		"fields":     fields,
		"primaryKey": []any{"attribute_id"},
	}
}

// PackageInfo describes one export run.
type PackageInfo struct {
	RunID   uuid.UUID
	RoleSet string
	Stats   Stats
	Created time.Time
}

// NewPackage builds a data package describing the CSV and JSON outputs.
// Resource paths are relative to the descriptor's directory.
func NewPackage(csvPath, jsonPath string, info PackageInfo) (*datapackage.Package, error) {
	dir := filepath.Dir(csvPath)
	rel := func(p string) string {
		if r, err := filepath.Rel(dir, p); err == nil {
			return filepath.ToSlash(r)
		}
		return filepath.ToSlash(p)
	}

	descriptor := map[string]any{
		"name":        "dca-template-attributes",
		"id":          info.RunID.String(),
		"title":       "Template attributes",
		"description": fmt.Sprintf("Attributes required by %s templates: %s", info.RoleSet, info.Stats.Summary()),
		"created":     info.Created.UTC().Format(time.RFC3339),
		"profile":     "data-package",
		"keywords":    []any{"dca", "attributes", info.RoleSet},
		"resources": []any{
			map[string]any{
				"name":      resourceName(csvPath, ""),
				"path":      rel(csvPath),
				"profile":   "tabular-data-resource",
				"format":    "csv",
				"mediatype": "text/csv",
				"encoding":  "utf-8",
				"schema":    fieldSchema(),
			},
			map[string]any{
				"name":      resourceName(jsonPath, "-json"),
				"path":      rel(jsonPath),
				"profile":   "data-resource",
				"format":    "json",
				"mediatype": "application/json",
				"encoding":  "utf-8",
			},
		},
	}

	pkg, err := datapackage.New(descriptor, dir, validator.InMemoryLoader())
	if err != nil {
		return nil, fmt.Errorf("building data package: %w", err)
	}
	return pkg, nil
}
