// Package typedesc models the algebraic data shapes that schema generation
// understands: primitives, records, tagged unions, the optional wrapper, and
// the built-in sequence wrapper.
//
// Descriptors are registered explicitly rather than discovered at runtime: Go
// has no native sum types, so union case and field metadata must be declared
// once per type. Descriptor identity is pointer identity; descriptors are
// immutable once constructed (or bound, for forward declarations) and safe
// to share across goroutines.
package typedesc

// Kind classifies a type descriptor.
type Kind int

const (
	KindPrimitive Kind = iota
	KindRecord
	KindUnion
	KindOptional
	KindSequence

	// kindDeclared marks a forward declaration that has not been bound yet.
	kindDeclared
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	case KindOptional:
		return "optional"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Primitive enumerates the scalar leaves of the data model.
type Primitive int

const (
	PrimString Primitive = iota
	PrimInt
	PrimFloat
	PrimBool
)

// Field is a named, typed member of a record or union case.
type Field struct {
	Name string
	Type *Type
}

// UnionCase is one alternative of a tagged union; Fields may be empty.
type UnionCase struct {
	Name   string
	Fields []Field
}

// Type is an immutable descriptor for one type of the data model.
type Type struct {
	kind   Kind
	name   string
	prim   Primitive
	elem   *Type
	fields []Field
	cases  []UnionCase
}

func (t *Type) Kind() Kind { return t.kind }

// Name returns the declared name for records and unions, the scalar name for
// primitives, and a composed name for wrappers ("option<T>", "seq<T>").
func (t *Type) Name() string { return t.name }

func (t *Type) Primitive() Primitive { return t.prim }

// Elem returns the wrapped type of an Optional or Sequence descriptor, nil
// otherwise.
func (t *Type) Elem() *Type { return t.elem }

// Fields returns a record's members in declaration order.
func (t *Type) Fields() []Field { return t.fields }

// Cases returns a union's alternatives in declaration order.
func (t *Type) Cases() []UnionCase { return t.cases }

var (
	stringType = &Type{kind: KindPrimitive, prim: PrimString, name: "string"}
	intType    = &Type{kind: KindPrimitive, prim: PrimInt, name: "int"}
	floatType  = &Type{kind: KindPrimitive, prim: PrimFloat, name: "float"}
	boolType   = &Type{kind: KindPrimitive, prim: PrimBool, name: "bool"}
)

// String returns the string primitive descriptor.
func String() *Type { return stringType }

// Int returns the integer primitive descriptor.
func Int() *Type { return intType }

// Float returns the floating-point primitive descriptor.
func Float() *Type { return floatType }

// Bool returns the boolean primitive descriptor.
func Bool() *Type { return boolType }

// NewField builds a record or case field.
func NewField(name string, t *Type) Field {
	if name == "" || t == nil {
		panic("typedesc: field requires a name and a type")
	}
	return Field{Name: name, Type: t}
}

// NewCase builds a union case with zero or more payload fields.
func NewCase(name string, fields ...Field) UnionCase {
	if name == "" {
		panic("typedesc: case requires a name")
	}
	return UnionCase{Name: name, Fields: fields}
}

// Record declares a named record with ordered fields.
func Record(name string, fields ...Field) *Type {
	if name == "" {
		panic("typedesc: record requires a name")
	}
	return &Type{kind: KindRecord, name: name, fields: fields}
}

// Union declares a named tagged union. At least one case is required; a
// union whose cases all carry zero fields is enumeration-like.
func Union(name string, cases ...UnionCase) *Type {
	if name == "" {
		panic("typedesc: union requires a name")
	}
	if len(cases) == 0 {
		panic("typedesc: union requires at least one case")
	}
	return &Type{kind: KindUnion, name: name, cases: cases}
}

// Optional wraps inner as "value of inner, or absent".
func Optional(inner *Type) *Type {
	if inner == nil {
		panic("typedesc: optional requires an inner type")
	}
	return &Type{kind: KindOptional, name: "option<" + inner.name + ">", elem: inner}
}

// Sequence wraps inner as an ordered collection. Sequences are deliberately
// excluded from union handling and schematized as JSON arrays.
func Sequence(inner *Type) *Type {
	if inner == nil {
		panic("typedesc: sequence requires an inner type")
	}
	return &Type{kind: KindSequence, name: "seq<" + inner.name + ">", elem: inner}
}

// Declare reserves a named descriptor so self-referential shapes can be
// expressed: the returned pointer may appear in fields before it is
// completed with BindUnion or BindRecord, exactly once. Generating a schema
// for an unbound declaration fails.
func Declare(name string) *Type {
	if name == "" {
		panic("typedesc: declaration requires a name")
	}
	return &Type{kind: kindDeclared, name: name}
}

// BindUnion completes a forward declaration as a tagged union.
func (t *Type) BindUnion(cases ...UnionCase) {
	if t.kind != kindDeclared {
		panic("typedesc: " + t.name + " is already bound")
	}
	if len(cases) == 0 {
		panic("typedesc: union requires at least one case")
	}
	t.kind = KindUnion
	t.cases = cases
}

// BindRecord completes a forward declaration as a record.
func (t *Type) BindRecord(fields ...Field) {
	if t.kind != kindDeclared {
		panic("typedesc: " + t.name + " is already bound")
	}
	t.kind = KindRecord
	t.fields = fields
}
