package fieldpath

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Doc is a decoded provider payload of unknown shape. Upstream responses vary
// by sport, endpoint and even team, so nothing is mapped to concrete structs;
// every read goes through the accessors below and degrades to a default when a
// step is absent or has an unexpected type.
type Doc = map[string]any

// Lookup walks steps (string keys into maps, int indexes into slices) through
// doc and reports whether the full path resolved. A nil intermediate, missing
// key or out-of-range index resolves to (nil, false), never a panic.
func Lookup(doc any, steps ...any) (any, bool) {
	current := doc
	for _, step := range steps {
		switch key := step.(type) {
		case string:
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			current, ok = m[key]
			if !ok {
				return nil, false
			}
		case int:
			s, ok := current.([]any)
			if !ok || key < 0 || key >= len(s) {
				return nil, false
			}
			current = s[key]
		default:
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// First probes each path in order and returns the first value that resolves.
func First(doc any, paths ...[]any) (any, bool) {
	for _, path := range paths {
		if value, ok := Lookup(doc, path...); ok {
			return value, true
		}
	}
	return nil, false
}

// String resolves the path as a string, trimming whitespace. Numbers are
// formatted rather than rejected since upstream is inconsistent about quoting.
func String(doc any, def string, steps ...any) string {
	value, ok := Lookup(doc, steps...)
	if !ok {
		return def
	}
	return CoerceString(value, def)
}

// Int resolves the path as an int, coercing floats, json numbers and numeric
// strings. Anything else yields the default instead of NaN poisoning.
func Int(doc any, def int, steps ...any) int {
	value, ok := Lookup(doc, steps...)
	if !ok {
		return def
	}
	f, ok := CoerceFloat(value)
	if !ok {
		return def
	}
	return int(f)
}

// IntPtr resolves the path as a nullable int: nil when absent or non-numeric.
func IntPtr(doc any, steps ...any) *int {
	value, ok := Lookup(doc, steps...)
	if !ok {
		return nil
	}
	f, ok := CoerceFloat(value)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func Float(doc any, def float64, steps ...any) float64 {
	value, ok := Lookup(doc, steps...)
	if !ok {
		return def
	}
	f, ok := CoerceFloat(value)
	if !ok {
		return def
	}
	return f
}

func Bool(doc any, def bool, steps ...any) bool {
	value, ok := Lookup(doc, steps...)
	if !ok {
		return def
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// Slice resolves the path as a list; a non-list value yields nil.
func Slice(doc any, steps ...any) []any {
	value, ok := Lookup(doc, steps...)
	if !ok {
		return nil
	}
	s, ok := value.([]any)
	if !ok {
		return nil
	}
	return s
}

// Map resolves the path as an object; a non-object value yields nil.
func Map(doc any, steps ...any) Doc {
	value, ok := Lookup(doc, steps...)
	if !ok {
		return nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// CoerceString renders scalar values as text; objects and lists fall back to
// the default so a renamed field never leaks `map[...]` into the UI.
func CoerceString(value any, def string) string {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return def
		}
		return trimmed
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return def
	}
}

// CoerceFloat extracts a float from the value types sonic can produce plus
// numeric strings, reporting failure instead of returning NaN.
func CoerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
