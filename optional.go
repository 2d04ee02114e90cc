package adtschema

import (
	js "github.com/reoring/adtschema/jsonschema"
	"github.com/reoring/adtschema/typedesc"
)

// processOptional handles the optional wrapper: the absent case contributes
// kind null, the present case contributes whatever kind the inner type's
// schema reports. The inner generation runs through the full processor chain
// so an optional union composes correctly.
func (r *genRun) processOptional(inner *typedesc.Type, node *js.Schema) error {
	kinds := js.Null
	sub := js.New(js.None)
	if err := r.generateInto(inner, sub); err != nil {
		return err
	}
	if sub.Kind == js.None {
		// The inner schema has no concrete kind (a pure composition or
		// reference); over-approximate with the full superset.
		kinds |= js.AllKinds
	} else {
		kinds |= sub.Kind
	}
	node.Kind |= kinds
	return nil
}
