package adtschema

import (
	js "github.com/reoring/adtschema/jsonschema"
	"github.com/reoring/adtschema/typedesc"
)

// processEnumUnion handles unions whose cases all carry zero fields: a
// closed set of string tags. Values and display names stay index-aligned in
// declaration order; there is nothing to share, so no definitions entry is
// created.
func (r *genRun) processEnumUnion(t *typedesc.Type, node *js.Schema) error {
	node.Kind = js.String
	for _, c := range t.Cases() {
		node.Enum = append(node.Enum, c.Name)
		node.EnumNames = append(node.EnumNames, c.Name)
	}
	return nil
}
