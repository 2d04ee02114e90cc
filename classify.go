package adtschema

import "github.com/reoring/adtschema/typedesc"

// classification routes a type descriptor to the one processor that handles
// its shape.
type classification int

const (
	// classRecord covers everything no dedicated processor claims; the
	// generic engine walk handles it (records, primitives, sequences).
	classRecord classification = iota
	classOptional
	classEnumUnion
	classPayloadUnion
)

// classify decides which processor handles t, returning the wrapped inner
// type for the optional case. The wrapper and sequence checks are structural
// and must short-circuit before the union-payload logic: the optional wrapper
// always wins, an all-empty union is enumeration-like, and sequence wrappers
// are excluded from union handling entirely.
func classify(t *typedesc.Type) (classification, *typedesc.Type) {
	switch t.Kind() {
	case typedesc.KindOptional:
		return classOptional, t.Elem()
	case typedesc.KindUnion:
		if allCasesEmpty(t.Cases()) {
			return classEnumUnion, nil
		}
		return classPayloadUnion, nil
	case typedesc.KindSequence:
		return classRecord, nil
	default:
		return classRecord, nil
	}
}

func allCasesEmpty(cases []typedesc.UnionCase) bool {
	for _, c := range cases {
		if len(c.Fields) > 0 {
			return false
		}
	}
	return true
}
