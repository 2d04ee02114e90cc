package adtschema_test

import (
	"testing"

	adtschema "github.com/reoring/adtschema"
	"github.com/reoring/adtschema/typedesc"
)

func issuesOf(t *testing.T, err error) adtschema.Issues {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation issues")
	}
	iss, ok := adtschema.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected nonempty Issues, got %v", err)
	}
	return iss
}

func hasIssue(iss adtschema.Issues, code, path string) bool {
	for _, it := range iss {
		if it.Code == code && it.Path == path {
			return true
		}
	}
	return false
}

func TestValidate_EnumUnion(t *testing.T) {
	color := typedesc.Union("Color",
		typedesc.NewCase("A"),
		typedesc.NewCase("B"),
		typedesc.NewCase("C"),
	)
	s := mustGenerate(t, color)

	if err := adtschema.Validate(s, []byte(`"B"`)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	iss := issuesOf(t, adtschema.Validate(s, []byte(`"D"`)))
	if !hasIssue(iss, adtschema.CodeInvalidEnum, "/") {
		t.Fatalf("expected invalid_enum at /, got %v", iss)
	}
}

func TestValidate_OptionalInt(t *testing.T) {
	s := mustGenerate(t, typedesc.Optional(typedesc.Int()))

	if err := adtschema.Validate(s, []byte(`null`)); err != nil {
		t.Fatalf("null must validate: %v", err)
	}
	if err := adtschema.Validate(s, []byte(`42`)); err != nil {
		t.Fatalf("42 must validate: %v", err)
	}
	iss := issuesOf(t, adtschema.Validate(s, []byte(`"x"`)))
	if iss[0].Code != adtschema.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", iss)
	}
}

func TestValidate_PayloadUnion(t *testing.T) {
	s := mustGenerate(t, shapeUnion())

	if err := adtschema.Validate(s, []byte(`{"kind":"Circle","radius":2.0}`)); err != nil {
		t.Fatalf("circle must validate: %v", err)
	}
	if err := adtschema.Validate(s, []byte(`{"kind":"Rect","width":1.0,"height":3.5}`)); err != nil {
		t.Fatalf("rect must validate: %v", err)
	}

	// Missing required payload field.
	iss := issuesOf(t, adtschema.Validate(s, []byte(`{"kind":"Circle","width":1.0}`)))
	if iss[0].Code != adtschema.CodeAnyOfMismatch {
		t.Fatalf("expected anyof_mismatch first, got %v", iss)
	}
	if !hasIssue(iss, adtschema.CodeRequired, "/radius") {
		t.Fatalf("expected required at /radius, got %v", iss)
	}

	// Discriminator value outside the enumeration.
	iss = issuesOf(t, adtschema.Validate(s, []byte(`{"kind":"Square"}`)))
	if !hasIssue(iss, adtschema.CodeInvalidEnum, "/kind") {
		t.Fatalf("expected invalid_enum at /kind, got %v", iss)
	}

	// Missing discriminator entirely.
	iss = issuesOf(t, adtschema.Validate(s, []byte(`{"radius":2.0}`)))
	if !hasIssue(iss, adtschema.CodeRequired, "/kind") {
		t.Fatalf("expected required at /kind, got %v", iss)
	}
}

func TestValidate_IntegerAcceptsIntegralFloat(t *testing.T) {
	s := mustGenerate(t, typedesc.Record("Point", typedesc.NewField("x", typedesc.Int())))
	if err := adtschema.Validate(s, []byte(`{"x":2}`)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	iss := issuesOf(t, adtschema.Validate(s, []byte(`{"x":2.5}`)))
	if !hasIssue(iss, adtschema.CodeInvalidType, "/x") {
		t.Fatalf("expected invalid_type at /x, got %v", iss)
	}
}

func TestValidate_SequenceItems(t *testing.T) {
	s := mustGenerate(t, typedesc.Sequence(typedesc.Int()))
	if err := adtschema.Validate(s, []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	iss := issuesOf(t, adtschema.Validate(s, []byte(`[1,"two",3]`)))
	if !hasIssue(iss, adtschema.CodeInvalidType, "/1") {
		t.Fatalf("expected invalid_type at /1, got %v", iss)
	}
}

func TestValidate_MalformedDocumentIsAnIssue(t *testing.T) {
	s := mustGenerate(t, typedesc.Optional(typedesc.Int()))
	iss := issuesOf(t, adtschema.Validate(s, []byte(`{not json`)))
	if iss[0].Code != adtschema.CodeParseError {
		t.Fatalf("expected parse_error, got %v", iss)
	}
	if iss[0].Cause == nil {
		t.Fatalf("parse issues should carry the underlying cause")
	}
}

func TestValidate_NilSchema(t *testing.T) {
	if err := adtschema.Validate(nil, []byte(`1`)); err == nil {
		t.Fatalf("expected error for nil schema")
	}
}

func TestValidateValue_DecodedDocument(t *testing.T) {
	s := mustGenerate(t, shapeUnion())
	doc := map[string]any{"kind": "Rect", "width": 1.0, "height": 2.0}
	if err := adtschema.ValidateValue(s, doc); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	doc["kind"] = "Square"
	if err := adtschema.ValidateValue(s, doc); err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestValidate_IssueOrderIsStable(t *testing.T) {
	user := typedesc.Record("User",
		typedesc.NewField("name", typedesc.String()),
		typedesc.NewField("age", typedesc.Int()),
	)
	s := mustGenerate(t, user)
	iss := issuesOf(t, adtschema.Validate(s, []byte(`{}`)))
	if len(iss) != 2 || iss[0].Path != "/name" || iss[1].Path != "/age" {
		t.Fatalf("required issues must follow declaration order, got %v", iss)
	}
}
