// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jsonld reads schematic-style JSON-LD data models: a single object
// whose @graph lists classes and properties with rdfs/sms/schema keys.
package jsonld

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// Model is a parsed data model.
type Model struct {
	Graph []Item `json:"@graph"`
}

// Item is one node of the @graph. Keys that may hold either a single value
// or a list are normalized to slices by the custom types below.
type Item struct {
	ID              string   `json:"@id"`
	Types           Strings  `json:"@type"`
	Label           string   `json:"rdfs:label"`
	Comment         string   `json:"rdfs:comment"`
	SubClassOf      Refs     `json:"rdfs:subClassOf"`
	DisplayName     string   `json:"sms:displayName"`
	Required        *Flag    `json:"sms:required"`
	Dependencies    Refs     `json:"sms:requiresDependency"`
	ValidationRules *Strings `json:"sms:validationRules"`
	RangeIncludes   Refs     `json:"schema:rangeIncludes"`
}

// HasType reports whether the item declares t among its @type values.
func (it Item) HasType(t string) bool {
	for _, v := range it.Types {
		if v == t {
			return true
		}
	}
	return false
}

// IsTemplate reports whether the item is a class with at least one
// required dependency.
func (it Item) IsTemplate() bool {
	return it.HasType("rdfs:Class") && len(it.Dependencies) > 0
}

// Template converts a template item to its shared representation.
func (it Item) Template() types.Template {
	return types.Template{
		ID:           it.ID,
		Label:        it.Label,
		DisplayName:  it.DisplayName,
		Description:  it.Comment,
		Dependencies: []string(it.Dependencies),
		SubClassOf:   []string(it.SubClassOf),
	}
}

// Templates returns the template items of the model in graph order.
func (m *Model) Templates() []types.Template {
	var out []types.Template
	for _, it := range m.Graph {
		if it.IsTemplate() {
			out = append(out, it.Template())
		}
	}
	return out
}

// Parse decodes a data model document.
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing data model: %w", err)
	}
	return &m, nil
}

// ReadFile loads and parses a data model from disk.
func ReadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Strings accepts a JSON string or an array of strings.
type Strings []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Strings) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*s = Strings{one}
	return nil
}

// Refs accepts a {"@id": ...} object, an array of them, or bare strings,
// and keeps the non-empty IDs in order.
type Refs []string

type ref struct {
	ID string `json:"@id"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Refs) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*r = nil
		return nil
	case strings.HasPrefix(trimmed, "["):
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		var ids []string
		for _, elem := range raw {
			id, err := refID(elem)
			if err != nil {
				return err
			}
			if id != "" {
				ids = append(ids, id)
			}
		}
		*r = ids
		return nil
	default:
		id, err := refID(data)
		if err != nil {
			return err
		}
		if id == "" {
			*r = nil
		} else {
			*r = Refs{id}
		}
		return nil
	}
}

func refID(data json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	}
	if strings.HasPrefix(trimmed, "{") {
		var v ref
		err := json.Unmarshal(data, &v)
		return v.ID, err
	}
	return "", nil
}

// Flag accepts true/false or the "sms:true"/"sms:false" tokens.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.TrimSpace(string(data)), "\"") {
	case "true", "sms:true":
		*f = true
	default:
		*f = false
	}
	return nil
}
