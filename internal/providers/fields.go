package providers

import (
	"math"
	"strings"

	"github.com/goccy/go-json"

	core "edit0r/internal/core"
)

// tally accumulates one vendor's score.
type tally struct {
	score      float64
	indicators []string
}

func (t *tally) hit(weight float64, indicator string) {
	t.score += weight
	t.indicators = append(t.indicators, indicator)
}

func (t *tally) detection(v core.Vendor) core.Detection {
	ind := t.indicators
	if ind == nil {
		ind = []string{}
	}
	return core.Detection{Vendor: v, Confidence: math.Max(0, math.Min(t.score, 1.0)), Indicators: ind}
}

// present reports whether key exists with a non-null value.
func present(cfg map[string]any, key string) bool {
	v, ok := cfg[key]
	return ok && v != nil
}

// truthy follows JSON-ish truthiness: empty strings, zero, false and null
// are falsy; arrays and objects are truthy even when empty.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	default:
		if n, ok := number(x); ok {
			return n != 0 && !math.IsNaN(n)
		}
		return true
	}
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

func str(cfg map[string]any, key string) (string, bool) {
	s, ok := cfg[key].(string)
	return s, ok
}

func array(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// firstObject returns cfg[key][0] when cfg[key] is an array whose first
// element is an object.
func firstObject(cfg map[string]any, key string) (map[string]any, bool) {
	a, ok := array(cfg[key])
	if !ok || len(a) == 0 {
		return nil, false
	}
	return object(a[0])
}

var endpointKeys = []string{"api_base", "base_url", "baseURL", "endpoint", "url"}

// endpoint returns the first endpoint-like string field, lowercased.
func endpoint(cfg map[string]any) string {
	for _, k := range endpointKeys {
		if s, ok := str(cfg, k); ok && s != "" {
			return strings.ToLower(s)
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
