// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package infer assigns species, file type, and heuristic data type tags to
// templates using ordered keyword rules. Every function is pure and total:
// the first matching rule wins and a non-match resolves to a fixed default.
package infer

import (
	"strings"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// Input carries the template fields the rules look at.
type Input struct {
	Name        string
	DisplayName string
	Description string

	// HasSpeciesDependency is true when one of the template's dependencies
	// is the Species attribute.
	HasSpeciesDependency bool
}

// FromTemplate builds the rule input for a parsed template.
func FromTemplate(t types.Template) Input {
	return Input{
		Name:                 t.Label,
		DisplayName:          t.DisplayName,
		Description:          t.Description,
		HasSpeciesDependency: HasSpeciesDependency(t.Dependencies),
	}
}

// HasSpeciesDependency reports whether any dependency ID names the Species
// attribute (e.g. "bts:Species").
func HasSpeciesDependency(deps []string) bool {
	for _, d := range deps {
		if strings.HasSuffix(d, ":Species") {
			return true
		}
	}
	return false
}

// Species returns the species tag for a template. Non-human markers are
// checked before "human" because they contain it.
func Species(in Input) types.Species {
	text := strings.ToLower(strings.Join([]string{in.Description, in.Name, in.DisplayName}, " "))

	switch {
	case containsAny(text, "non_human", "nonhuman", "non-human"):
		return types.SpeciesAnimalModel
	case containsAny(text, "human", "patient", "participant"):
		return types.SpeciesHuman
	case containsAny(text, "mouse", "mice"):
		return types.SpeciesMouse
	case containsAny(text, "animal"):
		return types.SpeciesAnimalModel
	case in.HasSpeciesDependency:
		return types.SpeciesMulti
	default:
		return types.SpeciesNotSpecified
	}
}

var sequencingKeywords = []string{"wgs", "wes", "rnaseq", "rna-seq", "scrna", "chip-seq", "chipseq"}

// FileTypeFromName maps a template or display name to a file type.
func FileTypeFromName(name string) types.FileType {
	n := strings.ToLower(name)

	if containsAny(n, sequencingKeywords...) {
		if !containsAny(n, "processed", "aligned") {
			return types.FileFASTQ
		}
		switch {
		case strings.Contains(n, "variant"):
			return types.FileVCF
		case strings.Contains(n, "expression"):
			return types.FileExpression
		default:
			return types.FileBAM
		}
	}

	switch {
	case containsAny(n, "methylation", "epigenetic"):
		if strings.Contains(n, "array") {
			return types.FileIDAT
		}
		return types.FileFASTQ
	case containsAny(n, "imaging", "mri"):
		return types.FileImage
	case strings.Contains(n, "proteomics"):
		return types.FileMassSpec
	case containsAny(n, "facs", "flow"):
		return types.FileFCS
	case containsAny(n, "protocol", "report"):
		return types.FileDocument
	default:
		return types.FileVarious
	}
}

// FileType returns the file type of a template with the given role. Only
// annotation templates carry a file type; the configured display name is
// preferred over the template name when present.
func FileType(role types.TemplateRole, configDisplayName, templateName string) types.FileType {
	if role != types.RoleAnnotation {
		return types.FileNone
	}
	if configDisplayName != "" {
		return FileTypeFromName(configDisplayName)
	}
	return FileTypeFromName(templateName)
}

var (
	attributeKeywords = []string{"age", "dose", "depth", "length", "distance", "timepoint", "datatype", "workflow"}
	referenceKeywords = []string{"portal", "publication"}
	clinicalKeywords  = []string{"clinical", "patient", "participant", "biospecimen", "individual", "cohort", "demographics", "epidemiology"}
	metadataKeywords  = []string{"metadata", "annotation", "assay", "template", "sequencing", "imaging", "proteomics", "genomics", "epigenetics", "methylation", "microscopy", "protocol", "documentation", "report", "code", "processed"}
)

// DataType classifies a template without a configured role. Attribute-like
// names are matched against the name alone; the remaining rules look at the
// name, description, and display name together.
func DataType(in Input) types.DataType {
	name := strings.ToLower(in.Name)
	text := strings.ToLower(strings.Join([]string{in.Name, in.Description, in.DisplayName}, " "))

	switch {
	case containsAny(name, attributeKeywords...):
		return types.DataAttribute
	case containsAny(name, referenceKeywords...):
		return types.DataReference
	case containsAny(text, clinicalKeywords...):
		return types.DataClinical
	case containsAny(text, metadataKeywords...):
		return types.DataMetadata
	default:
		return types.DataUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
