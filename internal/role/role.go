// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package role resolves the configured role of each template from the
// project's template menu configuration. Heuristics never substitute for a
// missing configuration: without a matching config entry the role is N/A.
package role

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/dca-graph/internal/fetch"
	"github.com/pdiddy/dca-graph/pkg/types"
)

// Normalize maps a raw role token onto the closed role set.
func Normalize(raw string) types.TemplateRole {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "annotation", "file", "file_annotation", "fileonly", "file_only":
		return types.RoleAnnotation
	case "record", "record_submission", "recordonly", "record_only", "table":
		return types.RoleRecord
	default:
		return types.RoleNone
	}
}

// Config is a project's template configuration. The zero value (no config
// available) resolves every template to N/A.
type Config struct {
	schemas []types.ManifestSchema
}

// NewConfig wraps a parsed template configuration. A nil tc yields an empty
// Config.
func NewConfig(tc *types.TemplateConfig) Config {
	if tc == nil {
		return Config{}
	}
	return Config{schemas: tc.ManifestSchemas}
}

// Available reports whether any manifest schemas are present.
func (c Config) Available() bool {
	return len(c.schemas) > 0
}

// Match is the outcome of resolving one template.
type Match struct {
	Role types.TemplateRole

	// DisplayName is the configured display name, empty when the template
	// has no config entry.
	DisplayName string

	// Found is true when a manifest schema named the template.
	Found bool
}

// Resolve finds the first manifest schema whose schema_name equals the
// template's label, the local part of its ID, or its display name.
func (c Config) Resolve(t types.Template) Match {
	local := t.LocalName()
	for _, s := range c.schemas {
		if s.SchemaName == "" {
			continue
		}
		if s.SchemaName != t.Label && s.SchemaName != local && s.SchemaName != t.DisplayName {
			continue
		}
		return Match{
			Role:        Normalize(s.RoleToken()),
			DisplayName: s.DisplayName,
			Found:       true,
		}
	}
	return Match{Role: types.RoleNone}
}

// Resolver loads template configurations, reading the local cache directory
// before any remote fetch.
type Resolver struct {
	client   *fetch.Client
	cacheDir string
}

// NewResolver creates a resolver that looks in cacheDir for
// <project>_template_config.json files.
func NewResolver(client *fetch.Client, cacheDir string) *Resolver {
	return &Resolver{client: client, cacheDir: cacheDir}
}

// CachePath returns the local cache file for a project.
func (r *Resolver) CachePath(project string) string {
	return filepath.Join(r.cacheDir, project+"_template_config.json")
}

// Load returns the configuration for a project. Failures are non-fatal: a
// warning is written to w and the empty Config is returned, so the
// project's templates resolve to N/A.
func (r *Resolver) Load(ctx context.Context, p types.Project, w io.Writer) Config {
	var tc types.TemplateConfig
	src, err := r.client.LocalFirst(ctx, r.CachePath(p.Name), p.TemplateConfigURL, &tc)
	if err != nil {
		if !errors.Is(err, fetch.ErrNoSource) {
			fmt.Fprintf(w, "warning: template config for %s unavailable (%v)\n", p.Name, err)
		}
		return Config{}
	}
	fmt.Fprintf(w, "template config: %s (%s, %d schemas)\n", p.Name, src, len(tc.ManifestSchemas))
	return NewConfig(&tc)
}
