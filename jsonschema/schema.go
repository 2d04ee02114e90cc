package jsonschema

import (
	"strings"

	j "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is a bitset over the JSON Schema primitive/structural types. A node
// may carry several kinds at once (for example a nullable integer is
// Null|Integer); None marks a node that has no own type, such as a pure
// allOf/anyOf composition or an unresolved reference.
type Kind uint8

const (
	None    Kind = 0
	Null    Kind = 1 << 0
	Boolean Kind = 1 << 1
	Integer Kind = 1 << 2
	Number  Kind = 1 << 3
	String  Kind = 1 << 4
	Array   Kind = 1 << 5
	Object  Kind = 1 << 6
)

// AllKinds is the full superset, used when a concrete kind cannot be
// statically narrowed.
const AllKinds = Null | Boolean | Integer | Number | String | Array | Object

var kindNames = []struct {
	kind Kind
	name string
}{
	{Null, "null"},
	{Boolean, "boolean"},
	{Integer, "integer"},
	{Number, "number"},
	{String, "string"},
	{Array, "array"},
	{Object, "object"},
}

// Has reports whether every bit of other is set in k.
func (k Kind) Has(other Kind) bool { return k&other == other }

// Strings renders the set bits in canonical order.
func (k Kind) Strings() []string {
	out := make([]string, 0, len(kindNames))
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			out = append(out, kn.name)
		}
	}
	return out
}

func (k Kind) String() string {
	if k == None {
		return "none"
	}
	return strings.Join(k.Strings(), "|")
}

// Properties is an insertion-ordered mapping from property (or definition)
// name to schema node. Declaration order of the source type is preserved
// through to the marshaled document.
type Properties = orderedmap.OrderedMap[string, *Schema]

// Schema is a mutable JSON Schema node. Nodes returned from a generation run
// must be treated as read-only by callers.
type Schema struct {
	Kind Kind

	// Enum lists allowed string values; EnumNames carries index-aligned
	// display labels for tooling that understands the enumNames extension.
	Enum      []string
	EnumNames []string

	// Discriminator names the property whose value selects a union case.
	Discriminator string

	Properties           *Properties
	Required             []string
	AdditionalProperties *bool

	Items *Schema

	AllOf []*Schema
	AnyOf []*Schema

	// Ref points at an entry of the root's definitions table
	// ("#/definitions/<name>"). A node with a non-empty Ref has no own
	// constraints.
	Ref string

	// Definitions is populated on the root node only and shared across one
	// generation run.
	Definitions *Properties

	// Abstract marks a schema that only exists to be composed into others.
	Abstract bool
}

// New returns a schema node with the given kind and nothing else set.
func New(kind Kind) *Schema { return &Schema{Kind: kind} }

const refPrefix = "#/definitions/"

// RootRef is the self-reference to the document root.
const RootRef = "#"

// DefinitionRef renders the reference string for a named definition.
func DefinitionRef(name string) string { return refPrefix + name }

// NewRef returns a pure reference node pointing at the named definition.
func NewRef(name string) *Schema { return &Schema{Ref: refPrefix + name} }

// RefName extracts the definition name from a reference string; ok is false
// when the reference does not point into the definitions table.
func RefName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, refPrefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, refPrefix), true
}

// SetProperty inserts or replaces a property schema, preserving insertion
// order for new names.
func (s *Schema) SetProperty(name string, p *Schema) {
	if s.Properties == nil {
		s.Properties = orderedmap.New[string, *Schema]()
	}
	s.Properties.Set(name, p)
}

// Property looks up a property schema by name.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}

// Define registers a named definition on this node. Existing entries are not
// overwritten; the first registration wins.
func (s *Schema) Define(name string, def *Schema) {
	if s.Definitions == nil {
		s.Definitions = orderedmap.New[string, *Schema]()
	}
	if _, ok := s.Definitions.Get(name); ok {
		return
	}
	s.Definitions.Set(name, def)
}

// Definition looks up a named definition on this node.
func (s *Schema) Definition(name string) (*Schema, bool) {
	if s.Definitions == nil {
		return nil, false
	}
	return s.Definitions.Get(name)
}

// Bool returns a pointer to b, for the AdditionalProperties field.
func Bool(b bool) *bool { return &b }

// MarshalJSON renders the node with standard JSON Schema vocabulary. The
// Kind bitset becomes "type" (a single string, or an array in canonical
// order); Abstract marshals as the x-abstract extension only when set.
func (s *Schema) MarshalJSON() ([]byte, error) {
	out := struct {
		Ref                  string      `json:"$ref,omitempty"`
		Type                 any         `json:"type,omitempty"`
		Enum                 []string    `json:"enum,omitempty"`
		EnumNames            []string    `json:"enumNames,omitempty"`
		Discriminator        string      `json:"discriminator,omitempty"`
		Properties           *Properties `json:"properties,omitempty"`
		Required             []string    `json:"required,omitempty"`
		AdditionalProperties *bool       `json:"additionalProperties,omitempty"`
		Items                *Schema     `json:"items,omitempty"`
		AllOf                []*Schema   `json:"allOf,omitempty"`
		AnyOf                []*Schema   `json:"anyOf,omitempty"`
		Definitions          *Properties `json:"definitions,omitempty"`
		Abstract             bool        `json:"x-abstract,omitempty"`
	}{
		Ref:                  s.Ref,
		Enum:                 s.Enum,
		EnumNames:            s.EnumNames,
		Discriminator:        s.Discriminator,
		Properties:           s.Properties,
		Required:             s.Required,
		AdditionalProperties: s.AdditionalProperties,
		Items:                s.Items,
		AllOf:                s.AllOf,
		AnyOf:                s.AnyOf,
		Definitions:          s.Definitions,
		Abstract:             s.Abstract,
	}
	switch names := s.Kind.Strings(); len(names) {
	case 0:
	case 1:
		out.Type = names[0]
	default:
		out.Type = names
	}
	return j.Marshal(out)
}
