// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dca-graph/internal/vocab"
	"github.com/pdiddy/dca-graph/pkg/types"
)

const modelTTL = `@prefix cb: <https://dca.app.sagebionetworks.org/CB/> .
@prefix dca: <https://dca.app.sagebionetworks.org/vocab/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix schema: <http://schema.org/> .

cb:WGSTemplate a rdfs:Class ;
    rdfs:label "WGSTemplate" ;
    dca:requiresDependency cb:Component, cb:FileFormat, cb:Species, cb:Unlabeled .

cb:ClinicalTemplate a rdfs:Class ;
    rdfs:label "ClinicalTemplate" ;
    dca:requiresDependency cb:Component, cb:Diagnosis .

cb:ImagingTemplate a rdfs:Class ;
    rdfs:label "ImagingTemplate" ;
    dca:requiresDependency cb:Component, cb:Modality .

cb:Component a rdfs:Class ;
    rdfs:label "Component" ;
    rdfs:comment "Template name" ;
    dca:validationRules ( ) .

cb:FileFormat a rdfs:Class ;
    rdfs:label "File Format" ;
    rdfs:comment "Format of the file, e.g. \"FASTQ\"" ;
    dca:validationRules ( "str" "list like" ) ;
    schema:rangeIncludes cb:FASTQ, cb:BAM .

cb:FASTQ a rdfs:Class ;
    rdfs:label "FASTQ" .

cb:BAM a rdfs:Class .

cb:Species a rdfs:Class ;
    rdfs:label "Species" .

cb:Diagnosis a rdfs:Class ;
    rdfs:label "Diagnosis" .

cb:Modality a rdfs:Class ;
    rdfs:label "Modality" .

cb:Unlabeled a rdfs:Class .
`

const enrichmentTTL = `@prefix cb: <https://dca.app.sagebionetworks.org/CB/> .
@prefix dca: <https://dca.app.sagebionetworks.org/vocab/> .

cb:WGSTemplate a dca:AnnotationTemplate ;
    dca:species "Multi-species" ;
    dca:fileType "FASTQ" .

cb:ClinicalTemplate a dca:RecordTemplate .

cb:ImagingTemplate a dca:UnconfiguredTemplate .
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

// fixture writes a base and an enrichment directory and returns them.
func fixture(t *testing.T) (base, enrich string) {
	t.Helper()
	root := t.TempDir()
	base = filepath.Join(root, "data_models_rdf")
	enrich = filepath.Join(root, "template_enrichment_rdf")
	writeFile(t, base, "CB_data_model.ttl", modelTTL)
	writeFile(t, enrich, "CB_enrichment.ttl", enrichmentTTL)
	return base, enrich
}

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.GraphConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func loaded(t *testing.T) *Store {
	t.Helper()
	base, enrich := fixture(t)
	s := openMemory(t)
	summary, err := s.LoadDirs(context.Background(), io.Discard, base, enrich)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Loaded)
	require.False(t, summary.HasFailures())
	return s
}

func TestLoadDirs_Idempotent(t *testing.T) {
	ctx := context.Background()
	base, enrich := fixture(t)
	s := openMemory(t)

	first, err := s.LoadDirs(ctx, io.Discard, base, enrich)
	require.NoError(t, err)
	require.Greater(t, first.Triples, 0)

	second, err := s.LoadDirs(ctx, io.Discard, base, enrich)
	require.NoError(t, err)
	assert.Equal(t, first.Triples, second.Triples)

	reversed := openMemory(t)
	third, err := reversed.LoadDirs(ctx, io.Discard, enrich, base)
	require.NoError(t, err)
	assert.Equal(t, first.Triples, third.Triples)
}

func TestInsert_SetSemantics(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	ts := []Triple{
		{Subject: "s", Predicate: "p", Object: "o", Kind: KindIRI},
		{Subject: "s", Predicate: "p", Object: "o", Kind: KindLiteral},
		{Subject: "s", Predicate: "p", Object: "o", Kind: KindLiteral, Lang: "en"},
	}
	added, err := s.Insert(ctx, ts)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = s.Insert(ctx, append(ts, ts...))
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLoadDirs_BlankNodesScopedByFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	body := "@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .\n_:n1 rdfs:label \"same\" .\n"
	writeFile(t, dir, "a.ttl", body)
	writeFile(t, dir, "b.ttl", body)

	s := openMemory(t)
	summary, err := s.LoadDirs(ctx, io.Discard, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Triples)

	again, err := s.LoadDirs(ctx, io.Discard, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Triples)
}

func TestLoadDirs_ParseErrorContinues(t *testing.T) {
	base, enrich := fixture(t)
	writeFile(t, base, "BROKEN_data_model.ttl", "undeclared:Thing a rdfs:Class .\n")

	s := openMemory(t)
	var log bytes.Buffer
	summary, err := s.LoadDirs(context.Background(), &log, base, enrich)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Loaded)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.HasFailures())
	assert.Contains(t, log.String(), "failed:  BROKEN_data_model.ttl")
}

func TestLoadDirs_MissingDirectory(t *testing.T) {
	s := openMemory(t)
	_, err := s.LoadDirs(context.Background(), io.Discard, filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadDirs_PersistentUpToDate(t *testing.T) {
	ctx := context.Background()
	base, enrich := fixture(t)
	cfg := types.GraphConfig{DBPath: filepath.Join(t.TempDir(), "graph.db")}

	s, err := Open(cfg)
	require.NoError(t, err)
	first, err := s.LoadDirs(ctx, io.Discard, base, enrich)
	require.NoError(t, err)
	require.False(t, first.UpToDate)
	require.NoError(t, s.Close())

	s, err = Open(cfg)
	require.NoError(t, err)
	defer s.Close()
	var log bytes.Buffer
	second, err := s.LoadDirs(ctx, &log, base, enrich)
	require.NoError(t, err)
	assert.True(t, second.UpToDate)
	assert.Equal(t, first.Triples, second.Triples)
	assert.Contains(t, log.String(), "graph up to date")
}

func attrIRIs(rows []AttributeRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = vocab.Shorten(r.IRI)
	}
	return out
}

func TestTemplateAttributes(t *testing.T) {
	ctx := context.Background()
	s := loaded(t)

	annotation, err := s.TemplateAttributes(ctx, []string{vocab.AnnotationTemplate})
	require.NoError(t, err)
	assert.Equal(t, []string{"cb:Component", "cb:FileFormat", "cb:Species"}, attrIRIs(annotation))

	ff := annotation[1]
	assert.Equal(t, "File Format", ff.Label)
	assert.Equal(t, `Format of the file, e.g. "FASTQ"`, ff.Description)
	assert.Equal(t, []string{"str", "list like"}, ff.Rules)
	assert.Empty(t, annotation[0].Rules)
	assert.Empty(t, annotation[2].Description)

	all, err := s.TemplateAttributes(ctx, []string{vocab.AnnotationTemplate, vocab.UnconfiguredTemplate})
	require.NoError(t, err)
	assert.Equal(t, []string{"cb:Component", "cb:FileFormat", "cb:Modality", "cb:Species"}, attrIRIs(all))
	assert.Subset(t, attrIRIs(all), attrIRIs(annotation))

	record, err := s.TemplateAttributes(ctx, []string{vocab.RecordTemplate})
	require.NoError(t, err)
	assert.Equal(t, []string{"cb:Component", "cb:Diagnosis"}, attrIRIs(record))

	_, err = s.TemplateAttributes(ctx, nil)
	assert.Error(t, err)
}

func TestTemplateAttributes_NoDuplicates(t *testing.T) {
	ctx := context.Background()
	s := loaded(t)
	// A second label on a shared attribute must not duplicate it.
	_, err := s.Insert(ctx, []Triple{{
		Subject:   vocab.ProjectNamespace("CB") + "Component",
		Predicate: vocab.RDFSLabel,
		Object:    "Another label",
		Kind:      KindLiteral,
		Datatype:  "http://www.w3.org/2001/XMLSchema#string",
	}})
	require.NoError(t, err)

	rows, err := s.TemplateAttributes(ctx, []string{vocab.AnnotationTemplate, vocab.UnconfiguredTemplate, vocab.RecordTemplate})
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, r := range rows {
		assert.False(t, seen[r.IRI], "duplicate %s", r.IRI)
		seen[r.IRI] = true
		assert.NotEmpty(t, r.Label)
	}
	assert.Len(t, rows, 5)
}

func TestRangeValues(t *testing.T) {
	ctx := context.Background()
	s := loaded(t)

	vals, err := s.RangeValues(ctx, vocab.ProjectNamespace("CB")+"FileFormat")
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, RangeValue{IRI: vocab.ProjectNamespace("CB") + "BAM"}, vals[0])
	assert.Equal(t, RangeValue{IRI: vocab.ProjectNamespace("CB") + "FASTQ", Label: "FASTQ"}, vals[1])

	none, err := s.RangeValues(ctx, vocab.ProjectNamespace("CB")+"Species")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListMembers(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	got, err := s.ListMembers(ctx, vocab.RDFNil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.ListMembers(ctx, "not a list")
	require.NoError(t, err)
	assert.Equal(t, []string{"not a list"}, got)
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	s := loaded(t)

	rs, err := s.Select(ctx, "SELECT count(*) AS n FROM triples WHERE predicate = '"+vocab.RDFType+"';", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"n"}, rs.Columns)
	require.Len(t, rs.Rows, 1)

	rs, err = s.Select(ctx, "WITH t AS (SELECT subject FROM triples) SELECT subject FROM t", 3)
	require.NoError(t, err)
	assert.Len(t, rs.Rows, 3)

	for _, q := range []string{
		"DELETE FROM triples",
		"SELECT 1; DELETE FROM triples",
		"",
		"INSERT INTO triples VALUES ('a','b','c','iri','','')",
	} {
		_, err := s.Select(ctx, q, 0)
		assert.ErrorIs(t, err, ErrNotReadOnly, q)
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}

func TestStatsExport(t *testing.T) {
	ctx := context.Background()
	s := loaded(t)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Greater(t, st.Triples, 0)
	require.NotEmpty(t, st.Predicates)
	assert.Equal(t, vocab.RDFType, st.Predicates[0].Predicate)

	dir := t.TempDir()
	require.NoError(t, s.ExportYAML(ctx, filepath.Join(dir, "graph.yaml")))
	require.NoError(t, s.ExportJSON(ctx, filepath.Join(dir, "graph.json")))
	data, err := os.ReadFile(filepath.Join(dir, "graph.yaml"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "triples:"))
}
