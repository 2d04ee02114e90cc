package adtschema

import (
	"context"
	"fmt"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/adtschema/i18n"
	js "github.com/reoring/adtschema/jsonschema"
)

// ValidateYAML decodes a YAML document, normalizes it to the JSON document
// model, and checks it against schema with the same rules as Validate.
func ValidateYAML(schema *js.Schema, data []byte) error {
	doc, err := decodeYAMLDocument(data)
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

// ParseYAMLWithValidation validates a YAML document against schema and, on
// success, round-trips the normalized document through JSON into T.
func ParseYAMLWithValidation[T any](ctx context.Context, schema *js.Schema, data []byte) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	doc, err := decodeYAMLDocument(data)
	if err != nil {
		return zero, AppendIssues(nil, Issue{
			Path:    "/",
			Code:    CodeParseError,
			Message: i18n.T(CodeParseError, nil),
			Cause:   err,
		})
	}
	if err := ValidateValue(schema, doc); err != nil {
		return zero, err
	}
	raw, err := j.Marshal(doc)
	if err != nil {
		return zero, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err})
	}
	var out T
	if err := j.Unmarshal(raw, &out); err != nil {
		return zero, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err})
	}
	return out, nil
}

func decodeYAMLDocument(data []byte) (any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return normalizeYAML(node)
}

// normalizeYAML converts yaml.v3 output into the JSON document model:
// string-keyed maps all the way down. Non-string mapping keys are rejected
// since they have no JSON representation.
func normalizeYAML(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			nv, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("adtschema: non-string mapping key %v", k)
			}
			nv, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			nv, err := normalizeYAML(el)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}
