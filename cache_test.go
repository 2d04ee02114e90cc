package adtschema_test

import (
	"sync"
	"testing"

	adtschema "github.com/reoring/adtschema"
	js "github.com/reoring/adtschema/jsonschema"
	"github.com/reoring/adtschema/typedesc"
)

func TestCache_MemoizedGeneratorIsIdempotent(t *testing.T) {
	cache := adtschema.NewCache()
	gen, err := adtschema.NewMemoizedGenerator(cache)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	shape := shapeUnion()

	s1, err := gen.Generate(shape)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s2, err := gen.Generate(shape)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s1 != s2 {
		t.Fatalf("expected the cached node on repeat generation")
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cache entry, got %d", cache.Len())
	}
}

func TestCache_DistinctDiscriminatorsAreDistinctEntries(t *testing.T) {
	cache := adtschema.NewCache()
	shape := shapeUnion()

	byKind, err := adtschema.NewMemoizedGenerator(cache)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	byType, err := adtschema.NewMemoizedGenerator(cache, adtschema.WithDiscriminator("type"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	s1, err := byKind.Generate(shape)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s2, err := byType.Generate(shape)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s1 == s2 {
		t.Fatalf("schemas must not be shared across discriminator names")
	}
	if cache.Len() != 2 {
		t.Fatalf("expected two cache entries, got %d", cache.Len())
	}
	b1, _ := s1.Definition("Shape")
	b2, _ := s2.Definition("Shape")
	if b1.Required[0] != "kind" || b2.Required[0] != "type" {
		t.Fatalf("base required property must follow the discriminator: %v / %v", b1.Required, b2.Required)
	}
}

func TestCache_ConcurrentFirstRequestsConverge(t *testing.T) {
	cache := adtschema.NewCache()
	shape := shapeUnion()

	const goroutines = 16
	results := make([]*js.Schema, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			s, err := cache.GetOrCreate("kind", shape)
			if err != nil {
				t.Errorf("unexpected err: %v", err)
				return
			}
			results[i] = s
		}(i)
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Fatalf("expected a single winner, got %d entries", cache.Len())
	}
	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatalf("caller %d observed a divergent schema", i)
		}
	}
}

func TestCache_SharedAcrossTypes(t *testing.T) {
	cache := adtschema.NewCache()
	gen, err := adtschema.NewMemoizedGenerator(cache)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := gen.Generate(shapeUnion()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := gen.Generate(typedesc.Optional(typedesc.Int())); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected two entries, got %d", cache.Len())
	}
}

func TestCache_NilArguments(t *testing.T) {
	if _, err := adtschema.NewMemoizedGenerator(nil); err == nil {
		t.Fatalf("expected error for nil cache")
	}
	cache := adtschema.NewCache()
	if _, err := cache.GetOrCreate("kind", nil); err == nil {
		t.Fatalf("expected error for nil descriptor")
	}
}
