// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/dca-graph/internal/vocab"
)

// AttributeRow is one attribute reachable from the selected templates.
type AttributeRow struct {
	IRI         string
	Label       string
	Description string

	// Rules holds the members of the attribute's validation rule collection
	// in list order.
	Rules []string
}

// attributesQuery selects every attribute reached through
// dca:requiresDependency from a subject typed with one of the placeholder
// classes. Attributes without a label are excluded. When an attribute has
// several labels or descriptions the smallest is used, so each IRI appears
// once.
const attributesQuery = `
SELECT a.attr, a.label,
	COALESCE((SELECT MIN(c.object) FROM triples c
		WHERE c.subject = a.attr AND c.predicate = ? AND c.kind = 'literal'), '') AS description,
	COALESCE((SELECT MIN(r.object) FROM triples r
		WHERE r.subject = a.attr AND r.predicate = ?), '') AS rules_head
FROM (
	SELECT dep.object AS attr, MIN(lbl.object) AS label
	FROM triples typ
	JOIN triples dep ON dep.subject = typ.subject AND dep.predicate = ? AND dep.kind = 'iri'
	JOIN triples lbl ON lbl.subject = dep.object AND lbl.predicate = ? AND lbl.kind = 'literal'
	WHERE typ.predicate = ? AND typ.kind = 'iri' AND typ.object IN (%s)
	GROUP BY dep.object
) a
ORDER BY a.label, a.attr`

// TemplateAttributes returns the distinct attributes required by templates
// typed with any of classes, ordered by label then IRI.
func (s *Store) TemplateAttributes(ctx context.Context, classes []string) ([]AttributeRow, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("no template classes given")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(classes)), ", ")
	q := fmt.Sprintf(attributesQuery, placeholders)
	args := []any{vocab.RDFSComment, vocab.ValidationRules, vocab.RequiresDependency, vocab.RDFSLabel, vocab.RDFType}
	for _, c := range classes {
		args = append(args, c)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying template attributes: %w", err)
	}

	type pending struct {
		row  AttributeRow
		head string
	}
	var results []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.row.IRI, &p.row.Label, &p.row.Description, &p.head); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning attribute: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("reading attributes: %w", err)
	}
	rows.Close()

	out := make([]AttributeRow, len(results))
	for i, p := range results {
		if p.head != "" {
			rules, err := s.ListMembers(ctx, p.head)
			if err != nil {
				return nil, err
			}
			p.row.Rules = rules
		}
		out[i] = p.row
	}
	return out, nil
}

// listQuery walks an RDF collection from its head node. The depth bound
// stops malformed cyclic lists.
const listQuery = `
WITH RECURSIVE list(node, idx) AS (
	SELECT ?, 0
	UNION ALL
	SELECT rest.object, list.idx + 1
	FROM list JOIN triples rest ON rest.subject = list.node AND rest.predicate = ?
	WHERE list.idx < 10000
)
SELECT first.object
FROM list JOIN triples first ON first.subject = list.node AND first.predicate = ?
ORDER BY list.idx`

// ListMembers returns the rdf:first values of the collection starting at
// head. A head that is rdf:nil yields nothing; a head that is not a list
// node is returned as a single member.
func (s *Store) ListMembers(ctx context.Context, head string) ([]string, error) {
	if head == vocab.RDFNil {
		return nil, nil
	}
	if !strings.HasPrefix(head, BlankPrefix) {
		return []string{head}, nil
	}

	rows, err := s.db.QueryContext(ctx, listQuery, head, vocab.RDFRest, vocab.RDFFirst)
	if err != nil {
		return nil, fmt.Errorf("expanding list %s: %w", head, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning list member: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expanding list %s: %w", head, err)
	}
	return out, nil
}

// RangeValue is one enumerated value of an attribute.
type RangeValue struct {
	IRI   string
	Label string
}

// RangeValues returns the schema:rangeIncludes values of an attribute with
// their labels, when present, ordered by IRI.
func (s *Store) RangeValues(ctx context.Context, attr string) ([]RangeValue, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT ri.object,
	COALESCE((SELECT MIN(l.object) FROM triples l
		WHERE l.subject = ri.object AND l.predicate = ? AND l.kind = 'literal'), '')
FROM triples ri
WHERE ri.subject = ? AND ri.predicate = ? AND ri.kind = 'iri'
ORDER BY ri.object`, vocab.RDFSLabel, attr, vocab.SchemaRangeIncludes)
	if err != nil {
		return nil, fmt.Errorf("querying range of %s: %w", attr, err)
	}
	defer rows.Close()

	var out []RangeValue
	for rows.Next() {
		var v RangeValue
		if err := rows.Scan(&v.IRI, &v.Label); err != nil {
			return nil, fmt.Errorf("scanning range value: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying range of %s: %w", attr, err)
	}
	return out, nil
}

// PredicateCount is the usage count of one predicate.
type PredicateCount struct {
	Predicate string `json:"predicate" yaml:"predicate"`
	Count     int    `json:"count" yaml:"count"`
}

// Predicates returns every predicate with its triple count, most used
// first.
func (s *Store) Predicates(ctx context.Context) ([]PredicateCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT predicate, count(*) AS n FROM triples GROUP BY predicate ORDER BY n DESC, predicate`)
	if err != nil {
		return nil, fmt.Errorf("querying predicates: %w", err)
	}
	defer rows.Close()

	var out []PredicateCount
	for rows.Next() {
		var p PredicateCount
		if err := rows.Scan(&p.Predicate, &p.Count); err != nil {
			return nil, fmt.Errorf("scanning predicate: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ClassCount is the number of subjects typed with a class.
type ClassCount struct {
	Class string `json:"class" yaml:"class"`
	Count int    `json:"count" yaml:"count"`
}

// Classes returns the rdf:type objects with their subject counts.
func (s *Store) Classes(ctx context.Context) ([]ClassCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT object, count(DISTINCT subject) AS n FROM triples
		 WHERE predicate = ? AND kind = 'iri'
		 GROUP BY object ORDER BY n DESC, object`, vocab.RDFType)
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	defer rows.Close()

	var out []ClassCount
	for rows.Next() {
		var c ClassCount
		if err := rows.Scan(&c.Class, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
