// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/dca-graph/internal/vocab"
	"github.com/pdiddy/dca-graph/pkg/types"
)

const (
	statsExamples   = 5
	statsValueWidth = 80
)

// Stats summarizes an exported attribute set.
type Stats struct {
	Total      int
	WithRules  int
	WithValues int
	Columns    []string

	// ByProject counts records per project key taken from the ID prefix.
	ByProject map[string]int

	// Examples holds the first attributes that enumerate valid values.
	Examples []types.AttributeRecord
}

// Analyze counts the records carrying validation rules and valid values.
func Analyze(recs []types.AttributeRecord) Stats {
	s := Stats{
		Total:     len(recs),
		Columns:   types.AttributeColumns,
		ByProject: make(map[string]int),
	}
	for _, r := range recs {
		s.ByProject[vocab.ProjectOf(r.ID)]++
		if r.ValidationRules != "" {
			s.WithRules++
		}
		if r.ValidValues != "" {
			s.WithValues++
			if len(s.Examples) < statsExamples {
				s.Examples = append(s.Examples, r)
			}
		}
	}
	return s
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

// RulesPercent is the share of records with validation rules.
func (s Stats) RulesPercent() float64 { return percent(s.WithRules, s.Total) }

// ValuesPercent is the share of records with valid values.
func (s Stats) ValuesPercent() float64 { return percent(s.WithValues, s.Total) }

// Summary is a one-line form used in the data package description.
func (s Stats) Summary() string {
	return fmt.Sprintf("%d rows; %d with validation rules (%.1f%%); %d with valid values (%.1f%%)",
		s.Total, s.WithRules, s.RulesPercent(), s.WithValues, s.ValuesPercent())
}

// Write prints the analysis block.
func (s Stats) Write(w io.Writer) {
	fmt.Fprintf(w, "\nResults analysis:\n")
	fmt.Fprintf(w, "  total attributes:      %d\n", s.Total)
	fmt.Fprintf(w, "  with validation rules: %d (%.1f%%)\n", s.WithRules, s.RulesPercent())
	fmt.Fprintf(w, "  with valid values:     %d (%.1f%%)\n", s.WithValues, s.ValuesPercent())
	fmt.Fprintf(w, "  columns:               %s\n", strings.Join(s.Columns, ", "))
	if len(s.ByProject) > 0 {
		keys := make([]string, 0, len(s.ByProject))
		for k := range s.ByProject {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s %d", k, s.ByProject[k])
		}
		fmt.Fprintf(w, "  by project:            %s\n", strings.Join(parts, ", "))
	}
	if len(s.Examples) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  Attributes with valid values:\n")
	for _, r := range s.Examples {
		values := r.ValidValues
		if rs := []rune(values); len(rs) > statsValueWidth {
			values = string(rs[:statsValueWidth-3]) + "..."
		}
		fmt.Fprintf(w, "    - %s: %s\n", r.Label, values)
	}
}
