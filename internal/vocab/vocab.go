// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab holds the namespaces and terms shared by the Turtle writers,
// the triple store, and the attribute export.
package vocab

import (
	"net/url"
	"strings"
)

const (
	// BaseIRI is the root of every project namespace: BaseIRI + PROJECT + "/".
	BaseIRI = "https://dca.app.sagebionetworks.org/"

	// DCA is the vocabulary namespace for pipeline-specific predicates and classes.
	DCA = BaseIRI + "vocab/"

	RDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS   = "http://www.w3.org/2000/01/rdf-schema#"
	Schema = "http://schema.org/"
	XSD    = "http://www.w3.org/2001/XMLSchema#"

	// BioThings is the namespace schematic data models use for bts: terms.
	BioThings = "http://schema.biothings.io/"
)

// Predicates and classes, as full IRIs.
const (
	RDFType  = RDF + "type"
	RDFFirst = RDF + "first"
	RDFRest  = RDF + "rest"
	RDFNil   = RDF + "nil"

	RDFSLabel      = RDFS + "label"
	RDFSComment    = RDFS + "comment"
	RDFSSubClassOf = RDFS + "subClassOf"

	SchemaRangeIncludes = Schema + "rangeIncludes"

	DisplayName        = DCA + "displayName"
	Required           = DCA + "required"
	RequiresDependency = DCA + "requiresDependency"
	ValidationRules    = DCA + "validationRules"
	SpeciesPredicate   = DCA + "species"
	FileTypePredicate  = DCA + "fileType"

	RecordTemplate       = DCA + "RecordTemplate"
	AnnotationTemplate   = DCA + "AnnotationTemplate"
	UnconfiguredTemplate = DCA + "UnconfiguredTemplate"
)

// StandardPrefixes maps the fixed prefixes to their namespaces.
var StandardPrefixes = map[string]string{
	"dca":    DCA,
	"rdf":    RDF,
	"rdfs":   RDFS,
	"schema": Schema,
	"xsd":    XSD,
}

// ProjectNamespace returns the namespace IRI of a project.
func ProjectNamespace(project string) string {
	return BaseIRI + project + "/"
}

// ProjectPrefix returns the Turtle prefix used for a project.
func ProjectPrefix(project string) string {
	return strings.ToLower(project)
}

// Shorten converts a full IRI into a prefixed name for display and export.
// Project IRIs become "<project-lower>:<local>" with the local part
// percent-decoded. The rdfs and schema namespaces use their usual prefixes
// and anything else is returned unchanged.
func Shorten(iri string) string {
	if rest, ok := strings.CutPrefix(iri, BaseIRI); ok {
		project, local, found := strings.Cut(rest, "/")
		if !found {
			return rest
		}
		if decoded, err := url.PathUnescape(local); err == nil {
			local = decoded
		}
		return strings.ToLower(project) + ":" + local
	}
	if local, ok := strings.CutPrefix(iri, RDFS); ok {
		return "rdfs:" + local
	}
	if local, ok := strings.CutPrefix(iri, Schema); ok {
		return "schema:" + local
	}
	return iri
}

// ProjectOf returns the upper-cased project key of a prefixed ID such as
// "cb:Assay", or "UNKNOWN" when the ID has no prefix.
func ProjectOf(prefixedID string) string {
	prefix, _, found := strings.Cut(prefixedID, ":")
	if !found {
		return "UNKNOWN"
	}
	return strings.ToUpper(prefix)
}
