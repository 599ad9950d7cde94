// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package turtle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerm(t *testing.T) {
	w := NewWriter("NF-OSI")
	tests := []struct {
		in, want string
	}{
		{"bts:Assay", "nf-osi:Assay"},
		{"http://schema.biothings.io/Assay", "nf-osi:Assay"},
		{"bts:File Format", "<https://dca.app.sagebionetworks.org/NF-OSI/File%20Format>"},
		{"bts:10xVisium", "<https://dca.app.sagebionetworks.org/NF-OSI/10xVisium>"},
		{"rdfs:Class", "rdfs:Class"},
		{"schema:Text", "schema:Text"},
		{"http://www.w3.org/2000/01/rdf-schema#Class", "rdfs:Class"},
		{"http://example.org/a{b}", "<http://example.org/a%7Bb%7D>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.Term(tt.in), tt.in)
	}
}

func TestNeedsEscaping(t *testing.T) {
	assert.False(t, NeedsEscaping("WGSTemplate"))
	assert.False(t, NeedsEscaping("rna_seq-v2"))
	assert.True(t, NeedsEscaping("a.b"))
	assert.True(t, NeedsEscaping("-start"))
	assert.True(t, NeedsEscaping("9lives"))
	assert.True(t, NeedsEscaping("has space"))
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, `"plain"`, Literal("plain"))
	assert.Equal(t, `"say \"hi\"\nback\\slash\ttab"`, Literal("say \"hi\"\nback\\slash\ttab"))
}

func TestCollection(t *testing.T) {
	assert.Equal(t, "( )", Collection(nil))
	assert.Equal(t, `( "str" "list like" )`, Collection([]string{"str", "list like"}))
}

func TestWriteStatement(t *testing.T) {
	w := NewWriter("CB")
	w.WritePrefixes()

	st := Statement{Subject: w.Term("bts:WGSTemplate"), Types: []string{"rdfs:Class"}}
	st.Add("rdfs:label", Literal("WGSTemplate"))
	st.Add("dca:requiresDependency", w.Term("bts:Component"), w.Term("bts:Species"))
	st.Add("rdfs:comment")
	w.WriteStatement(st)
	w.WriteStatement(Statement{Subject: "cb:Empty"})

	out := w.String()
	assert.True(t, strings.HasPrefix(out, "@prefix cb: <https://dca.app.sagebionetworks.org/CB/> .\n"))
	assert.Contains(t, out, "@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n\n")
	assert.Contains(t, out, "cb:WGSTemplate a rdfs:Class ;\n    rdfs:label \"WGSTemplate\" ;\n    dca:requiresDependency cb:Component, cb:Species .\n")
	assert.NotContains(t, out, "rdfs:comment")
	assert.NotContains(t, out, "cb:Empty")
}
