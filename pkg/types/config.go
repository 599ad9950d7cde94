// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that fetch remote
// data models and template configurations.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ConvertConfig holds settings for the JSON-LD to Turtle stage.
type ConvertConfig struct {
	// DataModelsDir contains <project>_data_model.jsonld files.
	DataModelsDir string `json:"data_models_dir" yaml:"data_models_dir" mapstructure:"data_models_dir"`

	// OutputDir receives <project>_data_model.ttl files.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// TemplatesConfig holds settings for the template extraction stage.
type TemplatesConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MasterFile is the CSV mapping project names to data model and
	// template config URLs.
	MasterFile string `json:"master_file" yaml:"master_file" mapstructure:"master_file"`

	// ProjectsRoot is scanned for <project>/dca_config.json files when the
	// master file is regenerated.
	ProjectsRoot string `json:"projects_root" yaml:"projects_root" mapstructure:"projects_root"`

	// DataModelsDir holds locally cached data models, read before any fetch.
	DataModelsDir string `json:"data_models_dir" yaml:"data_models_dir" mapstructure:"data_models_dir"`

	// TemplateConfigsDir holds locally cached template configs, read before any fetch.
	TemplateConfigsDir string `json:"template_configs_dir" yaml:"template_configs_dir" mapstructure:"template_configs_dir"`

	// OutputDir receives <project>_templates.csv files.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// IncludeAll keeps attribute-like templates in the listing.
	IncludeAll bool `json:"include_all" yaml:"include_all" mapstructure:"include_all"`
}

// EnrichConfig holds settings for the template CSV to Turtle stage.
type EnrichConfig struct {
	// TemplatesDir contains <project>_templates.csv files.
	TemplatesDir string `json:"templates_dir" yaml:"templates_dir" mapstructure:"templates_dir"`

	// OutputDir receives <project>_enrichment.ttl files.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// GraphConfig locates the Turtle files loaded into the triple store.
type GraphConfig struct {
	// BaseDir contains the data model Turtle files.
	BaseDir string `json:"base_dir" yaml:"base_dir" mapstructure:"base_dir"`

	// EnrichmentDir contains the template enrichment Turtle files.
	EnrichmentDir string `json:"enrichment_dir" yaml:"enrichment_dir" mapstructure:"enrichment_dir"`

	// DBPath is the SQLite file backing the store. Empty keeps it in memory.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`
}

// ExportConfig holds settings for the attribute export stage.
type ExportConfig struct {
	// Output is the CSV path; the JSON file and data package descriptor are
	// written next to it.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Sample is the number of rows echoed to the terminal.
	Sample int `json:"sample" yaml:"sample" mapstructure:"sample"`

	// RoleSet selects the template classes whose attributes are exported:
	// annotation, all, or record.
	RoleSet string `json:"role_set" yaml:"role_set" mapstructure:"role_set"`

	// ProgressEvery is the attribute cadence of progress lines (default 100).
	ProgressEvery int `json:"progress_every" yaml:"progress_every" mapstructure:"progress_every"`
}

// AIConfig holds settings for the question-to-query generator.
type AIConfig struct {
	// Model is the AI model identifier.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxTokens bounds the generated query length.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Convert   ConvertConfig   `json:"convert" yaml:"convert" mapstructure:"convert"`
	Templates TemplatesConfig `json:"templates" yaml:"templates" mapstructure:"templates"`
	Enrich    EnrichConfig    `json:"enrich" yaml:"enrich" mapstructure:"enrich"`
	Graph     GraphConfig     `json:"graph" yaml:"graph" mapstructure:"graph"`
	Export    ExportConfig    `json:"export" yaml:"export" mapstructure:"export"`
	AI        AIConfig        `json:"ai" yaml:"ai" mapstructure:"ai"`
}

// DefaultPipelineConfig returns the directory layout used when no config
// file overrides it.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Convert: ConvertConfig{
			DataModelsDir: "data_models",
			OutputDir:     "data_models_rdf",
		},
		Templates: TemplatesConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "dca-graph/0.1",
			},
			MasterFile:         "data_model_urls.csv",
			ProjectsRoot:       ".",
			DataModelsDir:      "data_models",
			TemplateConfigsDir: "template_configs",
			OutputDir:          "template_outputs",
		},
		Enrich: EnrichConfig{
			TemplatesDir: "template_outputs",
			OutputDir:    "template_enrichment_rdf",
		},
		Graph: GraphConfig{
			BaseDir:       "data_models_rdf",
			EnrichmentDir: "template_enrichment_rdf",
		},
		Export: ExportConfig{
			Output:        "notebook_data/template_attributes.csv",
			Sample:        10,
			RoleSet:       "annotation",
			ProgressEvery: 100,
		},
		AI: AIConfig{
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 1024,
		},
	}
}
