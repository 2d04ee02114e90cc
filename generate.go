package adtschema

import (
	"fmt"

	js "github.com/reoring/adtschema/jsonschema"
	"github.com/reoring/adtschema/typedesc"
)

// Generator derives JSON Schema documents from type descriptors. Settings
// are fixed at construction; a Generator is safe for concurrent use. When
// constructed via NewMemoizedGenerator it consults a Cache before
// synthesizing.
type Generator struct {
	cfg   Config
	cache *Cache
}

// NewGenerator builds a generator with fresh settings and no memoization.
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.DiscriminatorPropertyName == "" {
		return nil, fmt.Errorf("adtschema: discriminator property name must not be empty")
	}
	return &Generator{cfg: cfg}, nil
}

// NewMemoizedGenerator builds a generator backed by the given cache. The
// cache is passed explicitly; create one at process start and share it.
func NewMemoizedGenerator(cache *Cache, opts ...Option) (*Generator, error) {
	if cache == nil {
		return nil, fmt.Errorf("adtschema: nil cache")
	}
	g, err := NewGenerator(opts...)
	if err != nil {
		return nil, err
	}
	g.cache = cache
	return g, nil
}

// MustGenerator is NewGenerator that panics on configuration errors, for
// package-level schema declarations.
func MustGenerator(opts ...Option) *Generator {
	g, err := NewGenerator(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Generate synthesizes the schema for t. Generation failures are hard
// failures: no partial schema is returned. The result must be treated as
// read-only, especially when it came from the cache.
func (g *Generator) Generate(t *typedesc.Type) (*js.Schema, error) {
	if t == nil {
		return nil, fmt.Errorf("adtschema: nil type descriptor")
	}
	if g.cache != nil {
		return g.cache.GetOrCreate(g.cfg.DiscriminatorPropertyName, t)
	}
	return generate(g.cfg, t)
}

func generate(cfg Config, t *typedesc.Type) (*js.Schema, error) {
	run := &genRun{
		cfg:     cfg,
		root:    js.New(js.None),
		records: map[*typedesc.Type]*js.Schema{},
		unions:  map[*typedesc.Type]bool{},
	}
	if err := run.generateInto(t, run.root); err != nil {
		return nil, err
	}
	return run.root, nil
}

// genRun is the state of one generation: the root node carrying the shared
// definitions table, plus memo maps that double as cycle guards for named
// types.
type genRun struct {
	cfg     Config
	root    *js.Schema
	records map[*typedesc.Type]*js.Schema
	unions  map[*typedesc.Type]bool
}

// generateInto synthesizes the schema for t into node. Every recursive call
// funnels through here so the full processor chain applies at every depth.
func (r *genRun) generateInto(t *typedesc.Type, node *js.Schema) error {
	cls, inner := classify(t)
	switch cls {
	case classOptional:
		return r.processOptional(inner, node)
	case classEnumUnion:
		return r.processEnumUnion(t, node)
	case classPayloadUnion:
		return r.processPayloadUnion(t, node)
	default:
		return r.generateDefault(t, node)
	}
}

// generateDefault is the generic engine walk for shapes no processor claims.
func (r *genRun) generateDefault(t *typedesc.Type, node *js.Schema) error {
	switch t.Kind() {
	case typedesc.KindPrimitive:
		node.Kind = primitiveKind(t.Primitive())
		return nil
	case typedesc.KindSequence:
		node.Kind = js.Array
		item := js.New(js.None)
		if err := r.generateInto(t.Elem(), item); err != nil {
			return err
		}
		node.Items = item
		return nil
	case typedesc.KindRecord:
		return r.generateRecord(t, node)
	default:
		return fmt.Errorf("adtschema: unsupported type descriptor %q (%s)", t.Name(), t.Kind())
	}
}

func (r *genRun) generateRecord(t *typedesc.Type, node *js.Schema) error {
	if first, ok := r.records[t]; ok {
		// Second encounter in the same run, possibly a cycle through a
		// field. Promote the first node into the definitions table and make
		// this occurrence a reference to it. The root cannot live inside its
		// own definitions table, so it is referenced as "#" instead.
		if first == r.root {
			node.Ref = js.RootRef
			return nil
		}
		r.root.Define(t.Name(), first)
		node.Ref = js.DefinitionRef(t.Name())
		return nil
	}
	r.records[t] = node
	node.Kind = js.Object
	for _, f := range t.Fields() {
		p := js.New(js.None)
		if err := r.generateInto(f.Type, p); err != nil {
			return err
		}
		node.SetProperty(f.Name, p)
		node.Required = append(node.Required, f.Name)
	}
	return nil
}

func primitiveKind(p typedesc.Primitive) js.Kind {
	switch p {
	case typedesc.PrimString:
		return js.String
	case typedesc.PrimInt:
		return js.Integer
	case typedesc.PrimFloat:
		return js.Number
	case typedesc.PrimBool:
		return js.Boolean
	default:
		return js.None
	}
}
