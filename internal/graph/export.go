// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Stats describes the loaded graph.
type Stats struct {
	Triples    int              `json:"triples" yaml:"triples"`
	Predicates []PredicateCount `json:"predicates" yaml:"predicates"`
	Classes    []ClassCount     `json:"classes" yaml:"classes"`
}

// Stats collects triple, predicate, and class counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	preds, err := s.Predicates(ctx)
	if err != nil {
		return Stats{}, err
	}
	classes, err := s.Classes(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Triples: n, Predicates: preds, Classes: classes}, nil
}

// ExportYAML writes the graph statistics to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	st, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the graph statistics to path.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	st, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
