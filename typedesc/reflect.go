package typedesc

import (
	"fmt"
	"reflect"
	"strings"
)

// FromStruct derives a record descriptor from a Go struct value or pointer.
// Field order follows declaration order; `json` tags rename or skip fields;
// pointer fields map to Optional, slices and arrays to Sequence, and nested
// structs to nested records. Unions cannot be derived this way and must be
// declared with Union.
func FromStruct(v any) (*Type, error) {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return nil, fmt.Errorf("typedesc: nil value")
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("typedesc: expected struct, got %s", rt.Kind())
	}
	return fromStructType(rt, map[reflect.Type]*Type{})
}

func fromStructType(rt reflect.Type, memo map[reflect.Type]*Type) (*Type, error) {
	if t, ok := memo[rt]; ok {
		return t, nil
	}
	name := rt.Name()
	if name == "" {
		name = "anonymous"
	}
	// Registered before the field walk so self-referential structs resolve
	// to the same descriptor instead of recursing forever.
	rec := &Type{kind: KindRecord, name: name}
	memo[rt] = rec
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fieldName := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				fieldName = tagName
			}
		}
		ft, err := fromReflectType(sf.Type, memo)
		if err != nil {
			return nil, fmt.Errorf("typedesc: field %s.%s: %w", name, sf.Name, err)
		}
		rec.fields = append(rec.fields, Field{Name: fieldName, Type: ft})
	}
	return rec, nil
}

func fromReflectType(rt reflect.Type, memo map[reflect.Type]*Type) (*Type, error) {
	switch rt.Kind() {
	case reflect.String:
		return String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(), nil
	case reflect.Float32, reflect.Float64:
		return Float(), nil
	case reflect.Bool:
		return Bool(), nil
	case reflect.Pointer:
		inner, err := fromReflectType(rt.Elem(), memo)
		if err != nil {
			return nil, err
		}
		return Optional(inner), nil
	case reflect.Slice, reflect.Array:
		inner, err := fromReflectType(rt.Elem(), memo)
		if err != nil {
			return nil, err
		}
		return Sequence(inner), nil
	case reflect.Struct:
		return fromStructType(rt, memo)
	default:
		return nil, fmt.Errorf("unsupported kind %s", rt.Kind())
	}
}
