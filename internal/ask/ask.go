// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ask answers natural-language questions about the loaded graph.
// A QueryGenerator turns the question into a read-only SQL query over the
// triples table; the query runs against the store and its rows are
// returned as a graph.ResultSet.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/dca-graph/internal/graph"
	"github.com/pdiddy/dca-graph/internal/vocab"
)

// QueryGenerator produces a query for a question given a description of
// the graph.
type QueryGenerator interface {
	Generate(ctx context.Context, question, schemaContext string) (string, error)
}

// Store is the part of the graph store the asker needs.
type Store interface {
	Predicates(ctx context.Context) ([]graph.PredicateCount, error)
	Classes(ctx context.Context) ([]graph.ClassCount, error)
	Select(ctx context.Context, query string, limit int) (graph.ResultSet, error)
}

// Answer is a generated query and its result.
type Answer struct {
	Question string          `json:"question" yaml:"question"`
	Query    string          `json:"query" yaml:"query"`
	Result   graph.ResultSet `json:"result" yaml:"result"`
}

// Asker binds a generator to a store.
type Asker struct {
	gen   QueryGenerator
	store Store
	limit int

	schema string
}

// New creates an asker returning at most limit rows per answer (0 for no
// limit).
func New(gen QueryGenerator, store Store, limit int) *Asker {
	return &Asker{gen: gen, store: store, limit: limit}
}

// Ask generates a query for question and runs it. The schema context is
// built on first use and reused by later questions.
func (a *Asker) Ask(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, fmt.Errorf("empty question")
	}
	if a.schema == "" {
		sc, err := SchemaContext(ctx, a.store, 40)
		if err != nil {
			return Answer{}, err
		}
		a.schema = sc
	}

	q, err := a.gen.Generate(ctx, question, a.schema)
	if err != nil {
		return Answer{}, fmt.Errorf("generating query: %w", err)
	}
	q = CleanQuery(q)
	ans := Answer{Question: question, Query: q}

	rs, err := a.store.Select(ctx, q, a.limit)
	if err != nil {
		return ans, fmt.Errorf("running generated query: %w", err)
	}
	ans.Result = rs
	return ans, nil
}

// CleanQuery strips Markdown code fences and surrounding whitespace from a
// generated query.
func CleanQuery(q string) string {
	q = strings.TrimSpace(q)
	if !strings.HasPrefix(q, "```") {
		return q
	}
	lines := strings.Split(q, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

var namespaces = []struct{ prefix, iri string }{
	{"rdf", vocab.RDF},
	{"rdfs", vocab.RDFS},
	{"schema", vocab.Schema},
	{"xsd", vocab.XSD},
	{"dca", vocab.DCA},
	{"<project>", vocab.BaseIRI + "<PROJECT>/"},
}

// SchemaContext describes the triples table, the namespaces in use, and the
// top predicates and classes of the loaded graph.
func SchemaContext(ctx context.Context, s Store, top int) (string, error) {
	preds, err := s.Predicates(ctx)
	if err != nil {
		return "", err
	}
	classes, err := s.Classes(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Table triples(subject TEXT, predicate TEXT, object TEXT, kind TEXT, datatype TEXT, lang TEXT).\n")
	b.WriteString("kind is 'iri', 'blank', or 'literal'. IRIs are stored in full; blank nodes start with '_:'.\n")
	b.WriteString("RDF lists use rdf:first / rdf:rest and end at rdf:nil.\n\nNamespaces:\n")
	for _, ns := range namespaces {
		fmt.Fprintf(&b, "  %s: %s\n", ns.prefix, ns.iri)
	}
	b.WriteString("\nTemplate classes: dca:AnnotationTemplate, dca:RecordTemplate, dca:UnconfiguredTemplate.\n")
	b.WriteString("Templates link attributes with dca:requiresDependency; attribute values use schema:rangeIncludes.\n")

	b.WriteString("\nPredicates (triple count):\n")
	for _, p := range preds[:min(top, len(preds))] {
		fmt.Fprintf(&b, "  %s (%d)\n", p.Predicate, p.Count)
	}
	b.WriteString("\nClasses (subject count):\n")
	for _, c := range classes[:min(top, len(classes))] {
		fmt.Fprintf(&b, "  %s (%d)\n", c.Class, c.Count)
	}
	return b.String(), nil
}
