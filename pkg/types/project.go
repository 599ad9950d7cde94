// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Project groups the templates and attributes of one source organization.
// It is a namespace only; nothing about a project is stored in the graph
// beyond the IRI prefix.
type Project struct {
	// Name is the project key (e.g. "NF-OSI", "CB").
	Name string `json:"name" yaml:"name"`

	// DataModelURL locates the project's JSON-LD data model.
	DataModelURL string `json:"data_model_url" yaml:"data_model_url"`

	// TemplateConfigURL locates the optional template menu configuration.
	TemplateConfigURL string `json:"template_config_url,omitempty" yaml:"template_config_url,omitempty"`
}

// TemplateConfig is the template menu configuration published per project.
type TemplateConfig struct {
	ManifestSchemas []ManifestSchema `json:"manifest_schemas" yaml:"manifest_schemas"`
}

// ManifestSchema describes one configured template.
type ManifestSchema struct {
	SchemaName  string `json:"schema_name" yaml:"schema_name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	SubmittedAs string `json:"submitted_as,omitempty" yaml:"submitted_as,omitempty"`
}

// RoleToken returns the raw role value of the schema, preferring submitted_as.
func (m ManifestSchema) RoleToken() string {
	if m.SubmittedAs != "" {
		return m.SubmittedAs
	}
	return m.Type
}
