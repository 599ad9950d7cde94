// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/pdiddy/dca-graph/internal/jsonld"
	"github.com/pdiddy/dca-graph/internal/turtle"
)

// DataModel converts JSON-LD data models.
type DataModel struct{}

// Convert implements Converter.
func (DataModel) Convert(project, inPath string) (string, error) {
	m, err := jsonld.ReadFile(inPath)
	if err != nil {
		return "", err
	}
	return DataModelTurtle(m, project), nil
}

// DataModelTurtle renders every @graph item that has an @id. Types already
// in the rdfs or schema vocabulary keep their compact form; bts: terms move
// into the project namespace.
func DataModelTurtle(m *jsonld.Model, project string) string {
	w := turtle.NewWriter(project)
	w.WritePrefixes()

	for _, it := range m.Graph {
		if it.ID == "" {
			continue
		}
		st := turtle.Statement{Subject: w.Term(it.ID)}
		for _, t := range it.Types {
			st.Types = append(st.Types, w.Term(t))
		}
		if it.Label != "" {
			st.Add("rdfs:label", turtle.Literal(it.Label))
		}
		if it.Comment != "" {
			st.Add("rdfs:comment", turtle.Literal(it.Comment))
		}
		st.Add("rdfs:subClassOf", terms(w, it.SubClassOf)...)
		if it.DisplayName != "" {
			st.Add("dca:displayName", turtle.Literal(it.DisplayName))
		}
		if it.Required != nil {
			st.Add("dca:required", turtle.Bool(bool(*it.Required)))
		}
		st.Add("dca:requiresDependency", terms(w, it.Dependencies)...)
		if it.ValidationRules != nil {
			st.Add("dca:validationRules", turtle.Collection(*it.ValidationRules))
		}
		st.Add("schema:rangeIncludes", terms(w, it.RangeIncludes)...)

		if len(st.Types) == 0 && len(st.Predicates) == 0 {
			continue
		}
		w.WriteStatement(st)
	}
	return w.String()
}

func terms(w *turtle.Writer, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.Term(id))
	}
	return out
}
