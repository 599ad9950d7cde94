// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AttributeRecord is one attribute referenced by the selected templates,
// flattened for export. Optional fields are empty strings when absent.
type AttributeRecord struct {
	// ID is the prefixed attribute IRI (e.g. "cb:Assay").
	ID string `json:"attribute_id" yaml:"attribute_id"`

	// Label is the rdfs:label; every exported attribute has one.
	Label string `json:"label" yaml:"label"`

	// Description is the rdfs:comment.
	Description string `json:"description" yaml:"description"`

	// ValidationRules holds the members of the dca:validationRules collection.
	ValidationRules string `json:"validation_rules" yaml:"validation_rules"`

	// ValidValues holds the enumerated schema:rangeIncludes values.
	ValidValues string `json:"valid_values" yaml:"valid_values"`
}

// AttributeColumns is the header shared by the attribute CSV and the keys
// of the attribute JSON objects.
var AttributeColumns = []string{
	"attribute_id",
	"label",
	"description",
	"validation_rules",
	"valid_values",
}

// Values returns the record's fields in AttributeColumns order.
func (a AttributeRecord) Values() []string {
	return []string{a.ID, a.Label, a.Description, a.ValidationRules, a.ValidValues}
}

// Sensitivity is the keyword-based privacy class of an attribute.
type Sensitivity string

const (
	SensitivityRed    Sensitivity = "Red"
	SensitivityYellow Sensitivity = "Yellow"
	SensitivityGreen  Sensitivity = "Green"
)
