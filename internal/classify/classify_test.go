// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dca-graph/pkg/types"
)

func TestAttribute(t *testing.T) {
	tests := []struct {
		name string
		want types.Sensitivity
	}{
		{"Patient Email", types.SensitivityRed},
		{"DOB", types.SensitivityRed},
		{"Specimen ID", types.SensitivityRed}, // red before yellow
		{"Tissue Sampling", types.SensitivityYellow},
		{"Assay", types.SensitivityYellow},
		{"Filter", types.SensitivityGreen},
		{"", types.SensitivityGreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Attribute(tt.name))
		})
	}
}

func TestAll(t *testing.T) {
	results, counts := All([]string{"Assay", "  ", "Email", "Assay", "Filter"})
	assert.Equal(t, []Result{
		{Attribute: "Assay", Classification: types.SensitivityYellow},
		{Attribute: "Email", Classification: types.SensitivityRed},
		{Attribute: "Filter", Classification: types.SensitivityGreen},
	}, results)
	assert.Equal(t, Counts{Red: 1, Yellow: 1, Green: 1}, counts)
	assert.Equal(t, 3, counts.Total())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Result{{Attribute: "Tumor, primary", Classification: types.SensitivityYellow}}))
	assert.Equal(t, "Attribute,Classification\n\"Tumor, primary\",Yellow\n", buf.String())
}
