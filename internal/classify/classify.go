// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a keyword-based sensitivity class to attribute
// names.
package classify

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/dca-graph/pkg/types"
)

// Keywords that mark an attribute as likely personally identifying.
var redKeywords = []string{
	"id", "name", "location", "address", "phone", "email", "subject", "patient",
	"donor", "barcode", "serial", "number", "code", "zip", "post", "coordinate",
	"lat", "lon", "geo", "date", "time", "age", "sex", "gender", "race",
	"ethnicity", "demographics", "family", "history", "record", "dob",
}

// Keywords that mark an attribute as sensitive in context.
var yellowKeywords = []string{
	"sample", "specimen", "diagnosis", "treatment", "assay", "aliquot", "analyte",
	"array", "batch", "block", "case", "cell", "cohort", "culture", "data",
	"device", "disease", "drug", "event", "experiment", "extract", "facility",
	"flowcell", "fragment", "image", "individual", "institution", "instrument",
	"isolate", "kit", "lab", "lane", "library", "lot", "marker", "method",
	"molecule", "mouse", "nucleus", "operator", "organ", "organism", "panel",
	"participant", "passage", "platform", "pool", "portion", "prep",
	"preservation", "procedure", "project", "protein", "protocol", "reagent",
	"read", "region", "result", "run", "scan", "section", "sequence",
	"sequencing", "series", "serum", "site", "slide", "software", "source",
	"stain", "stage", "strain", "study", "sub", "submitter", "survey",
	"system", "target", "test", "tissue", "tube", "tumor", "type", "unit",
	"use", "well", "workflow",
}

// Attribute returns the sensitivity of an attribute name. Matching is a
// case-insensitive substring test; any red keyword wins over yellow, and a
// name matching neither list is green.
func Attribute(name string) types.Sensitivity {
	lower := strings.ToLower(name)
	for _, k := range redKeywords {
		if strings.Contains(lower, k) {
			return types.SensitivityRed
		}
	}
	for _, k := range yellowKeywords {
		if strings.Contains(lower, k) {
			return types.SensitivityYellow
		}
	}
	return types.SensitivityGreen
}

// Result is one classified attribute.
type Result struct {
	Attribute      string            `json:"attribute" yaml:"attribute"`
	Classification types.Sensitivity `json:"classification" yaml:"classification"`
}

// Counts tallies results per class.
type Counts struct {
	Red    int `json:"red" yaml:"red"`
	Yellow int `json:"yellow" yaml:"yellow"`
	Green  int `json:"green" yaml:"green"`
}

// Total returns the number of classified attributes.
func (c Counts) Total() int {
	return c.Red + c.Yellow + c.Green
}

// All classifies names in order, skipping blanks and repeats.
func All(names []string) ([]Result, Counts) {
	var (
		out    []Result
		counts Counts
	)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		c := Attribute(n)
		switch c {
		case types.SensitivityRed:
			counts.Red++
		case types.SensitivityYellow:
			counts.Yellow++
		default:
			counts.Green++
		}
		out = append(out, Result{Attribute: n, Classification: c})
	}
	return out, counts
}

// Labels returns the labels of attribute records.
func Labels(recs []types.AttributeRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Label
	}
	return out
}

// WriteCSV writes results under an "Attribute,Classification" header.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Attribute", "Classification"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Attribute, string(r.Classification)}); err != nil {
			return fmt.Errorf("writing %s: %w", r.Attribute, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes results to path as CSV.
func WriteFile(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
