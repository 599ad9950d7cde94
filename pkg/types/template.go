// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the dca-graph pipeline:
// templates and their classification, attributes, projects, template
// configuration files, and per-stage configuration.
package types

// TemplateRole is the configured role of a template. The set is closed:
// a template is a Record, an Annotation, or unconfigured (N/A).
type TemplateRole string

const (
	RoleRecord     TemplateRole = "Record"
	RoleAnnotation TemplateRole = "Annotation"
	RoleNone       TemplateRole = "N/A"
)

// Valid reports whether r is one of the three defined roles.
func (r TemplateRole) Valid() bool {
	switch r {
	case RoleRecord, RoleAnnotation, RoleNone:
		return true
	}
	return false
}

// ClassName returns the local name of the dca: class asserted for templates
// with this role in the enrichment graph.
func (r TemplateRole) ClassName() string {
	switch r {
	case RoleRecord:
		return "RecordTemplate"
	case RoleAnnotation:
		return "AnnotationTemplate"
	default:
		return "UnconfiguredTemplate"
	}
}

// Species is the inferred organism scope of a template.
type Species string

const (
	SpeciesHuman        Species = "Human"
	SpeciesMouse        Species = "Mouse"
	SpeciesAnimalModel  Species = "Animal model"
	SpeciesMulti        Species = "Multi-species"
	SpeciesNotSpecified Species = "Not specified"
)

// FileType is the inferred file format annotated by an annotation template.
type FileType string

const (
	FileFASTQ      FileType = "FASTQ"
	FileBAM        FileType = "BAM/CRAM"
	FileVCF        FileType = "VCF"
	FileExpression FileType = "Expression matrix"
	FileIDAT       FileType = "IDAT"
	FileImage      FileType = "Image"
	FileMassSpec   FileType = "Mass spec data"
	FileFCS        FileType = "FCS"
	FileDocument   FileType = "PDF/Document"
	FileVarious    FileType = "Various"
	FileNone       FileType = "N/A"
)

// DataType is the heuristic category of a template. It is only used to
// drop attribute-like pseudo templates from the template listing.
type DataType string

const (
	DataAttribute DataType = "Attribute"
	DataReference DataType = "Reference"
	DataClinical  DataType = "Clinical data"
	DataMetadata  DataType = "Metadata"
	DataUnknown   DataType = "Unknown"
)

// Template is a schema class that declares at least one required dependency.
type Template struct {
	// ID is the namespaced identifier from the data model (e.g. "bts:WGSTemplate").
	ID string `json:"id" yaml:"id"`

	// Label is the rdfs:label, used as the template's schema name.
	Label string `json:"label" yaml:"label"`

	// DisplayName is the human-readable name (sms:displayName).
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Description is the rdfs:comment.
	Description string `json:"description" yaml:"description"`

	// Dependencies lists the attribute IDs the template requires, in source order.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`

	// SubClassOf lists parent class IDs.
	SubClassOf []string `json:"sub_class_of,omitempty" yaml:"sub_class_of,omitempty"`
}

// LocalName returns the part of the ID after the last colon.
func (t Template) LocalName() string {
	for i := len(t.ID) - 1; i >= 0; i-- {
		if t.ID[i] == ':' {
			return t.ID[i+1:]
		}
	}
	return t.ID
}

// TemplateRow is one line of a per-project template listing.
type TemplateRow struct {
	TemplateID  string       `json:"template_id" yaml:"template_id"`
	DisplayName string       `json:"display_name" yaml:"display_name"`
	Species     Species      `json:"species" yaml:"species"`
	FileType    FileType     `json:"file_type" yaml:"file_type"`
	Role        TemplateRole `json:"configured_template_role" yaml:"configured_template_role"`
	Description string       `json:"description" yaml:"description"`
}

// TemplateColumns is the header of a template listing CSV.
var TemplateColumns = []string{
	"template_id",
	"display_name",
	"species",
	"file_type",
	"configured_template_role",
	"description",
}
