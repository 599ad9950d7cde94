// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package turtle writes project-scoped RDF in Turtle syntax. Terms are
// written as prefixed names when the local part is a legal Turtle local
// name and as percent-encoded full IRIs otherwise.
package turtle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/dca-graph/internal/vocab"
)

// Writer accumulates prefixes and statements for one project file.
type Writer struct {
	project  string
	prefixes map[string]string
	sb       strings.Builder
}

// NewWriter creates a writer whose project prefix maps bts: terms into the
// project namespace alongside the standard prefixes.
func NewWriter(project string) *Writer {
	w := &Writer{
		project:  project,
		prefixes: map[string]string{vocab.ProjectPrefix(project): vocab.ProjectNamespace(project)},
	}
	for p, ns := range vocab.StandardPrefixes {
		w.prefixes[p] = ns
	}
	return w
}

// WritePrefixes writes prefix declarations in sorted order followed by a
// blank line.
func (w *Writer) WritePrefixes() {
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		fmt.Fprintf(&w.sb, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.sb.WriteString("\n")
}

// Statement is one subject block: rdf:type values followed by
// predicate/object pairs. Objects must already be formatted terms.
type Statement struct {
	Subject    string
	Types      []string
	Predicates []Predicate
}

// Predicate holds one predicate with one or more formatted objects.
type Predicate struct {
	Name    string
	Objects []string
}

// Add appends a predicate when it has at least one object.
func (s *Statement) Add(name string, objects ...string) {
	var kept []string
	for _, o := range objects {
		if o != "" {
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		return
	}
	s.Predicates = append(s.Predicates, Predicate{Name: name, Objects: kept})
}

// WriteStatement writes a subject block terminated with " ." and a blank
// line. A statement with neither types nor predicates is skipped.
func (w *Writer) WriteStatement(s Statement) {
	if len(s.Types) == 0 && len(s.Predicates) == 0 {
		return
	}

	var parts []string
	if len(s.Types) > 0 {
		parts = append(parts, "a "+strings.Join(s.Types, ", "))
	}
	for _, p := range s.Predicates {
		parts = append(parts, p.Name+" "+strings.Join(p.Objects, ", "))
	}

	w.sb.WriteString(s.Subject)
	w.sb.WriteString(" ")
	w.sb.WriteString(strings.Join(parts, " ;\n    "))
	w.sb.WriteString(" .\n\n")
}

// String returns the accumulated Turtle document.
func (w *Writer) String() string {
	return w.sb.String()
}

// Term formats a data model identifier. It accepts compact IDs ("bts:X",
// "rdfs:Class", "schema:Text"), BioThings IRIs, and any other absolute IRI.
func (w *Writer) Term(id string) string {
	if local, ok := strings.CutPrefix(id, vocab.BioThings); ok {
		return w.ProjectTerm(local)
	}
	if local, ok := strings.CutPrefix(id, "bts:"); ok {
		return w.ProjectTerm(local)
	}
	for prefix, ns := range vocab.StandardPrefixes {
		if local, ok := strings.CutPrefix(id, ns); ok {
			return prefixed(prefix, ns, local)
		}
		if local, ok := strings.CutPrefix(id, prefix+":"); ok {
			return prefixed(prefix, ns, local)
		}
	}
	return IRI(id)
}

// ProjectTerm formats a local name in the project namespace.
func (w *Writer) ProjectTerm(local string) string {
	return prefixed(vocab.ProjectPrefix(w.project), vocab.ProjectNamespace(w.project), local)
}

func prefixed(prefix, ns, local string) string {
	if NeedsEscaping(local) {
		return IRI(ns + local)
	}
	return prefix + ":" + local
}

// specialChars cannot appear unescaped in a prefixed local name.
const specialChars = "/\\?#[]@!$&'()*+,;= %.<>`{}|^\""

// NeedsEscaping reports whether local must be written as a full IRI.
func NeedsEscaping(local string) bool {
	if local == "" {
		return false
	}
	if strings.ContainsAny(local, specialChars) {
		return true
	}
	c := local[0]
	return c == '-' || (c >= '0' && c <= '9')
}

var iriEscaper = strings.NewReplacer(
	">", "%3E",
	"<", "%3C",
	"`", "%60",
	"{", "%7B",
	"}", "%7D",
	"|", "%7C",
	"^", "%5E",
	"\\", "%5C",
	"\"", "%22",
	" ", "%20",
)

// IRI writes an absolute IRI in angle brackets, percent-encoding the
// characters Turtle forbids inside IRI references.
func IRI(iri string) string {
	return "<" + iriEscaper.Replace(iri) + ">"
}

var literalEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
	"\n", "\\n",
	"\r", "\\r",
	"\t", "\\t",
)

// Literal writes a quoted string literal.
func Literal(s string) string {
	return "\"" + literalEscaper.Replace(s) + "\""
}

// Bool writes an xsd:boolean literal in its short form.
func Bool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Collection writes an RDF collection of string literals. An empty input
// yields rdf:nil written as "( )".
func Collection(items []string) string {
	if len(items) == 0 {
		return "( )"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = Literal(it)
	}
	return "( " + strings.Join(quoted, " ") + " )"
}
