package adtschema

import (
	"bytes"
	"math"
	"sort"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/reoring/adtschema/i18n"
	js "github.com/reoring/adtschema/jsonschema"
)

// Validate checks a JSON document against a generated schema. A nil return
// means the document conforms; otherwise the returned error is a nonempty,
// ordered Issues list. Validation failures are data, never panics.
func Validate(schema *js.Schema, data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return AppendIssues(nil, Issue{
			Path:    "/",
			Code:    CodeParseError,
			Message: i18n.T(CodeParseError, nil),
			Cause:   err,
		})
	}
	return ValidateValue(schema, doc)
}

// ValidateValue checks an already-decoded document (the JSON document model:
// nil, bool, string, json.Number/float64, []any, map[string]any) against a
// schema.
func ValidateValue(schema *js.Schema, doc any) error {
	if schema == nil {
		return singleIssue(CodeParseError, "nil schema")
	}
	vs := validationState{root: schema}
	if iss := vs.validate(schema, doc, ""); len(iss) > 0 {
		return iss
	}
	return nil
}

func decodeDocument(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

type validationState struct {
	root *js.Schema
}

func (vs validationState) validate(s *js.Schema, v any, path string) Issues {
	if s.Ref != "" {
		target, ok := vs.resolve(s.Ref)
		if !ok {
			return Issues{{
				Path:    renderPath(path),
				Code:    CodeUnresolvedRef,
				Message: i18n.T(CodeUnresolvedRef, nil),
				Hint:    s.Ref,
			}}
		}
		return vs.validate(target, v, path)
	}

	var iss Issues

	if s.Kind != js.None && !kindMatches(s.Kind, v) {
		// Further checks on this node assume the kind held.
		return Issues{{
			Path:    renderPath(path),
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, nil),
			Hint:    "expected " + s.Kind.String(),
			Params:  map[string]any{"expected": s.Kind.String()},
		}}
	}

	if len(s.Enum) > 0 {
		sv, ok := v.(string)
		if !ok || !containsString(s.Enum, sv) {
			iss = append(iss, Issue{
				Path:    renderPath(path),
				Code:    CodeInvalidEnum,
				Message: i18n.T(CodeInvalidEnum, nil),
				Hint:    "allowed: " + strings.Join(s.Enum, ", "),
				Params:  map[string]any{"allowed": s.Enum},
			})
		}
	}

	if m, ok := v.(map[string]any); ok {
		iss = append(iss, vs.validateObject(s, m, path)...)
	}

	if arr, ok := v.([]any); ok && s.Items != nil {
		for i, el := range arr {
			iss = append(iss, vs.validate(s.Items, el, path+"/"+strconv.Itoa(i))...)
		}
	}

	for _, sub := range s.AllOf {
		iss = append(iss, vs.validate(sub, v, path)...)
	}

	if len(s.AnyOf) > 0 {
		iss = append(iss, vs.validateAnyOf(s.AnyOf, v, path)...)
	}

	return iss
}

func (vs validationState) validateObject(s *js.Schema, m map[string]any, path string) Issues {
	var iss Issues
	for _, req := range s.Required {
		if _, present := m[req]; !present {
			iss = append(iss, Issue{
				Path:    joinPath(path, req),
				Code:    CodeRequired,
				Message: i18n.T(CodeRequired, nil),
			})
		}
	}
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			pv, present := m[pair.Key]
			if !present {
				continue
			}
			iss = append(iss, vs.validate(pair.Value, pv, joinPath(path, pair.Key))...)
		}
	}
	if s.AdditionalProperties != nil && !*s.AdditionalProperties {
		// Sorted for a deterministic issue order.
		extra := make([]string, 0, len(m))
		for k := range m {
			if _, known := s.Property(k); !known {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			iss = append(iss, Issue{
				Path:    joinPath(path, k),
				Code:    CodeUnknownKey,
				Message: i18n.T(CodeUnknownKey, nil),
			})
		}
	}
	return iss
}

// validateAnyOf accepts the document when at least one branch holds. On
// failure it reports one anyof_mismatch issue followed by the issues of the
// closest branch (fewest issues), which keeps union errors readable instead
// of dumping every branch.
func (vs validationState) validateAnyOf(branches []*js.Schema, v any, path string) Issues {
	var closest Issues
	for _, sub := range branches {
		bi := vs.validate(sub, v, path)
		if len(bi) == 0 {
			return nil
		}
		if closest == nil || len(bi) < len(closest) {
			closest = bi
		}
	}
	iss := Issues{{
		Path:    renderPath(path),
		Code:    CodeAnyOfMismatch,
		Message: i18n.T(CodeAnyOfMismatch, nil),
	}}
	return append(iss, closest...)
}

func (vs validationState) resolve(ref string) (*js.Schema, bool) {
	if ref == js.RootRef {
		return vs.root, true
	}
	name, ok := js.RefName(ref)
	if !ok {
		return nil, false
	}
	return vs.root.Definition(name)
}

func kindMatches(k js.Kind, v any) bool {
	switch t := v.(type) {
	case nil:
		return k.Has(js.Null)
	case bool:
		return k.Has(js.Boolean)
	case string:
		return k.Has(js.String)
	case j.Number:
		if isIntegral(t.String()) {
			return k&(js.Integer|js.Number) != 0
		}
		return k.Has(js.Number)
	case int:
		return k&(js.Integer|js.Number) != 0
	case int64:
		return k&(js.Integer|js.Number) != 0
	case uint64:
		return k&(js.Integer|js.Number) != 0
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return k&(js.Integer|js.Number) != 0
		}
		return k.Has(js.Number)
	case []any:
		return k.Has(js.Array)
	case map[string]any:
		return k.Has(js.Object)
	default:
		return false
	}
}

func isIntegral(num string) bool {
	return !strings.ContainsAny(num, ".eE")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ---- JSON Pointer rendering (RFC 6901, root rendered as "/") ----

func renderPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func joinPath(path, key string) string {
	return path + "/" + escapePointer(key)
}

func escapePointer(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
