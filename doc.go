package adtschema

// Package adtschema derives JSON Schema documents from algebraic type
// descriptors and validates JSON documents against them before typed parsing.
//
// - Explicit type descriptors (typedesc): records, optional wrappers, tagged
//   unions with zero or more payload fields, sequences
// - A processor chain that classifies each type and shapes its schema:
//   nullable-union encoding for optionals, closed string enums for empty
//   unions, discriminator-based allOf/anyOf composition for payload unions
// - A process-lifetime Cache for memoized generation, keyed by discriminator
//   name and type identity
// - A stable error model via Issues (JSON Pointer, code, message)
// - A validate-then-parse pipeline: typed parsing never runs on documents
//   that failed validation
//
// Design policy:
// - Keep only public APIs in the root package; models live under typedesc/
//   and jsonschema/.
// - Validation failures are values (Issues), never panics; generation
//   failures are hard errors with no partial schema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	shape := typedesc.Union("Shape",
//		typedesc.NewCase("Circle", typedesc.NewField("radius", typedesc.Float())),
//		typedesc.NewCase("Rect", typedesc.NewField("width", typedesc.Float()), typedesc.NewField("height", typedesc.Float())),
//	)
//	gen, _ := adtschema.NewMemoizedGenerator(cache)
//	schema, _ := gen.Generate(shape)
//	v, err := adtschema.ParseUnionWithValidation(ctx, schema, data, "kind")
