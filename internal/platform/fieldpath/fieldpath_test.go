package fieldpath

import "testing"

func sampleDoc() Doc {
	return Doc{
		"id": "401585601",
		"competitions": []any{
			map[string]any{
				"broadcasts": []any{
					map[string]any{"names": []any{"ESPN2"}},
				},
				"competitors": []any{
					map[string]any{"homeAway": "home", "score": "102"},
				},
			},
		},
		"count":  float64(5),
		"active": true,
	}
}

func TestLookupResolvesNestedPath(t *testing.T) {
	doc := sampleDoc()

	value, ok := Lookup(doc, "competitions", 0, "broadcasts", 0, "names", 0)
	if !ok {
		t.Fatal("expected path to resolve")
	}
	if value != "ESPN2" {
		t.Fatalf("unexpected value: %v", value)
	}
}

func TestLookupAbsentIntermediate(t *testing.T) {
	doc := sampleDoc()

	cases := [][]any{
		{"competitions", 0, "odds", 0, "details"},
		{"competitions", 3},
		{"competitions", 0, "competitors", 0, "team", "name"},
		{"missing"},
	}
	for _, steps := range cases {
		if _, ok := Lookup(doc, steps...); ok {
			t.Fatalf("expected %v to be absent", steps)
		}
	}
}

func TestIntCoercesNumericString(t *testing.T) {
	doc := sampleDoc()

	got := Int(doc, -1, "competitions", 0, "competitors", 0, "score")
	if got != 102 {
		t.Fatalf("unexpected score: got=%d want=102", got)
	}
}

func TestIntDefaultsOnMalformedValue(t *testing.T) {
	doc := Doc{"score": "TBD"}

	if got := Int(doc, 0, "score"); got != 0 {
		t.Fatalf("expected default, got %d", got)
	}
	if ptr := IntPtr(doc, "score"); ptr != nil {
		t.Fatalf("expected nil pointer, got %d", *ptr)
	}
}

func TestFirstFallbackChain(t *testing.T) {
	doc := Doc{"record": map[string]any{"summary": "6-2"}}

	value, ok := First(doc,
		[]any{"records", 0, "summary"},
		[]any{"record", "summary"},
	)
	if !ok || value != "6-2" {
		t.Fatalf("unexpected fallback result: %v ok=%v", value, ok)
	}

	if _, ok := First(doc, []any{"a"}, []any{"b"}); ok {
		t.Fatal("expected no path to resolve")
	}
}

func TestStringCoercion(t *testing.T) {
	doc := sampleDoc()

	if got := String(doc, "", "count"); got != "5" {
		t.Fatalf("unexpected numeric coercion: %q", got)
	}
	if got := String(doc, "fallback", "competitions"); got != "fallback" {
		t.Fatalf("object should fall back to default, got %q", got)
	}
	if got := String(Doc{"name": "   "}, "fallback", "name"); got != "fallback" {
		t.Fatalf("blank string should fall back to default, got %q", got)
	}
}

func TestBoolAndSliceAndMap(t *testing.T) {
	doc := sampleDoc()

	if !Bool(doc, false, "active") {
		t.Fatal("expected active=true")
	}
	if Bool(doc, false, "id") {
		t.Fatal("non-bool string should use default")
	}
	if got := Slice(doc, "competitions"); len(got) != 1 {
		t.Fatalf("unexpected slice length: %d", len(got))
	}
	if got := Slice(doc, "id"); got != nil {
		t.Fatal("non-slice should yield nil")
	}
	if got := Map(doc, "competitions", 0); got == nil {
		t.Fatal("expected map at competitions[0]")
	}
}
