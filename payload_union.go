package adtschema

import (
	js "github.com/reoring/adtschema/jsonschema"
	"github.com/reoring/adtschema/typedesc"
)

// processPayloadUnion handles unions where at least one case carries fields.
// The union's own name maps to a base object schema holding the
// discriminator contract; each case gets a definition composing the base
// (via allOf) with its payload object, and the outer node becomes a pure
// anyOf over case references. A conforming document is therefore an object
// carrying the discriminator with one of the enumerated names, which also
// carries that case's required fields.
func (r *genRun) processPayloadUnion(t *typedesc.Type, node *js.Schema) error {
	if r.unions[t] {
		// Already generated (or in progress) in this run; the definitions
		// table acts as the memo and the base entry is the ref target.
		node.Ref = js.DefinitionRef(t.Name())
		return nil
	}
	r.unions[t] = true

	disc := r.cfg.DiscriminatorPropertyName

	// The outer node is a pure composition, not a typed leaf.
	node.Kind = js.None
	node.AdditionalProperties = js.Bool(true)
	node.Abstract = false

	base := js.New(js.Object)
	base.Discriminator = disc
	tag := js.New(js.String)
	for _, c := range t.Cases() {
		tag.Enum = append(tag.Enum, c.Name)
	}
	base.SetProperty(disc, tag)
	base.Required = []string{disc}
	r.root.Define(t.Name(), base)

	for _, c := range t.Cases() {
		payload := js.New(js.Object)
		for _, f := range c.Fields {
			fs := js.New(js.None)
			if err := r.generateInto(f.Type, fs); err != nil {
				return err
			}
			// Only the kind of the field's schema survives here; nested
			// structure (enum values, nested required sets) is flattened.
			payload.SetProperty(f.Name, js.New(fs.Kind))
			payload.Required = append(payload.Required, f.Name)
		}
		caseSchema := js.New(js.None)
		caseSchema.AllOf = []*js.Schema{js.NewRef(t.Name()), payload}
		r.root.Define(c.Name, caseSchema)
		node.AnyOf = append(node.AnyOf, js.NewRef(c.Name))
	}
	return nil
}
