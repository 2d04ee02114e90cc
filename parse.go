package adtschema

import (
	"context"

	j "github.com/goccy/go-json"

	"github.com/reoring/adtschema/i18n"
	js "github.com/reoring/adtschema/jsonschema"
)

// ParseWithValidation validates data against schema and, only on success,
// unmarshals it into T. On validation failure the issues are returned
// unchanged and the typed parse never runs.
func ParseWithValidation[T any](ctx context.Context, schema *js.Schema, data []byte) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	if err := Validate(schema, data); err != nil {
		return zero, err
	}
	var out T
	if err := j.Unmarshal(data, &out); err != nil {
		return zero, AppendIssues(nil, Issue{
			Path:    "/",
			Code:    CodeParseError,
			Message: i18n.T(CodeParseError, nil),
			Cause:   err,
		})
	}
	return out, nil
}

// UnionValue is the typed parse result for a discriminated union document:
// the selected case name and the case's payload fields.
type UnionValue struct {
	Case   string
	Fields map[string]any
}

// ParseUnionWithValidation is the overload taking an explicit discriminator
// property name, so case dispatch uses the same field the schema's
// discriminator contract names. An empty name falls back to the default.
func ParseUnionWithValidation(ctx context.Context, schema *js.Schema, data []byte, discriminator string) (UnionValue, error) {
	var zero UnionValue
	if discriminator == "" {
		discriminator = DefaultDiscriminator
	}
	if err := ctx.Err(); err != nil {
		return zero, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	if err := Validate(schema, data); err != nil {
		return zero, err
	}
	var m map[string]any
	if err := j.Unmarshal(data, &m); err != nil {
		return zero, AppendIssues(nil, Issue{
			Path:    "/",
			Code:    CodeParseError,
			Message: i18n.T(CodeParseError, nil),
			Cause:   err,
		})
	}
	tag, _ := m[discriminator].(string)
	if tag == "" {
		return zero, Issues{{
			Path:    "/" + discriminator,
			Code:    CodeDiscriminatorMissing,
			Message: i18n.T(CodeDiscriminatorMissing, nil),
			Hint:    "discriminator missing",
		}}
	}
	fields := make(map[string]any, len(m)-1)
	for k, v := range m {
		if k != discriminator {
			fields[k] = v
		}
	}
	return UnionValue{Case: tag, Fields: fields}, nil
}
