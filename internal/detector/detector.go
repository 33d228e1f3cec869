// Package detector guesses which vendor a pasted JSON config belongs to.
package detector

import (
	stdjson "encoding/json"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	core "edit0r/internal/core"
	"edit0r/internal/providers"
)

// Threshold is the hard cutoff below which the best vendor is discarded in
// favor of generic.
const Threshold = 0.3

const (
	IndicatorInvalidJSON = "Invalid JSON - treating as generic text"
	IndicatorNotObject   = "Not a valid config object"
	IndicatorNoSignals   = "No strong provider signals detected"
)

// Detector is stateless; the zero value is not usable, construct with New.
// A Detector may be copied and shared between goroutines.
type Detector struct {
	providers []providers.Provider
}

func New() Detector {
	return Detector{providers: providers.Registered()}
}

// Detect parses text as JSON and scores it. It never fails: malformed input
// degrades to generic with an explanatory indicator.
func (d Detector) Detect(text string) core.Detection {
	v, ok := Parse(text)
	if !ok {
		return fallback(IndicatorInvalidJSON)
	}
	return d.DetectValue(v)
}

// DetectValue scores an already parsed value.
func (d Detector) DetectValue(v any) core.Detection {
	cfg, ok := v.(map[string]any)
	if !ok {
		return fallback(IndicatorNotObject)
	}
	results := d.score(cfg)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) == 0 || results[0].Confidence < Threshold {
		return fallback(IndicatorNoSignals)
	}
	return results[0]
}

// Scores returns every vendor's raw result in registration order, or nil
// when text is not a JSON object.
func (d Detector) Scores(text string) []core.Detection {
	v, ok := Parse(text)
	if !ok {
		return nil
	}
	cfg, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return d.score(cfg)
}

func (d Detector) score(cfg map[string]any) []core.Detection {
	out := make([]core.Detection, 0, len(d.providers))
	for _, p := range d.providers {
		out = append(out, p.Score(cfg))
	}
	return out
}

// Parse decodes text into a generic JSON value. Blank text and anything
// outside the JSON grammar does not parse.
func Parse(text string) (any, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	// goccy decodes some text the JSON grammar rejects (leading zeros, raw
	// control characters in strings, trailing NUL), so gate on a strict check.
	if !stdjson.Valid([]byte(text)) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	return v, true
}

func fallback(indicator string) core.Detection {
	return core.Detection{Vendor: core.VendorGeneric, Confidence: 1.0, Indicators: []string{indicator}}
}
