// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/pdiddy/dca-graph/internal/templates"
	"github.com/pdiddy/dca-graph/internal/turtle"
	"github.com/pdiddy/dca-graph/pkg/types"
)

// Enrichment converts template listings into role, species, and file type
// assertions on the project's template IRIs.
type Enrichment struct{}

// Convert implements Converter. A listing with no rows converts to nothing.
func (Enrichment) Convert(project, inPath string) (string, error) {
	rows, err := templates.ReadCSV(inPath)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return EnrichmentTurtle(rows, project), nil
}

// EnrichmentTurtle renders template rows. Rows whose role is outside the
// closed set get no class assertion; "Not specified" species and "N/A" file
// types are omitted.
func EnrichmentTurtle(rows []types.TemplateRow, project string) string {
	w := turtle.NewWriter(project)
	w.WritePrefixes()

	for _, r := range rows {
		if r.TemplateID == "" {
			continue
		}
		st := turtle.Statement{Subject: w.ProjectTerm(r.TemplateID)}
		if r.Role.Valid() {
			st.Types = []string{"dca:" + r.Role.ClassName()}
		}
		if r.Species != "" && r.Species != types.SpeciesNotSpecified {
			st.Add("dca:species", turtle.Literal(string(r.Species)))
		}
		if r.FileType != "" && r.FileType != types.FileNone {
			st.Add("dca:fileType", turtle.Literal(string(r.FileType)))
		}
		w.WriteStatement(st)
	}
	return w.String()
}
