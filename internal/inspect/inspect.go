// Package inspect runs the detect-then-validate pipeline over editor text.
package inspect

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	core "edit0r/internal/core"
	"edit0r/internal/detector"
	"edit0r/internal/validator"
)

// Report is everything the editor shows for one buffer. Reports may be
// returned from the cache and must be treated as read-only.
type Report struct {
	Detection  core.Detection `json:"detection"`
	Vendor     core.Vendor    `json:"provider"`
	Overridden bool           `json:"overridden"`
	Parsed     bool           `json:"parsed"`
	Validation core.Result    `json:"validation"`
	Stats      Stats          `json:"stats"`
}

type Inspector struct {
	det   detector.Detector
	val   validator.Validator
	cache *lru.Cache[uint64, Report]
	log   *zap.Logger
}

// New returns an Inspector memoizing up to size reports.
func New(size int, log *zap.Logger) (*Inspector, error) {
	cache, err := lru.New[uint64, Report](size)
	if err != nil {
		return nil, fmt.Errorf("inspect cache: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Inspector{det: detector.New(), val: validator.New(), cache: cache, log: log}, nil
}

// Inspect detects the vendor of text and validates it against override when
// set, or the detected vendor otherwise. An empty override means auto.
func (in *Inspector) Inspect(text string, override core.Vendor) (Report, error) {
	if override != "" && !override.Known() {
		return Report{}, fmt.Errorf("%w: %q", core.ErrUnknownVendor, string(override))
	}
	key := cacheKey(text, override)
	if r, ok := in.cache.Get(key); ok {
		return r, nil
	}

	r := Report{Stats: Measure(text)}
	v, parsed := detector.Parse(text)
	if parsed {
		r.Detection = in.det.DetectValue(v)
	} else {
		r.Detection = in.det.Detect(text)
	}
	r.Parsed = parsed
	r.Vendor = r.Detection.Vendor
	if override != "" {
		r.Vendor = override
		r.Overridden = override != r.Detection.Vendor
	}
	if parsed {
		r.Validation = in.val.Validate(v, r.Vendor)
	} else {
		var empty core.Report
		r.Validation = empty.Result()
	}

	in.log.Debug("inspected",
		zap.String("detected", string(r.Detection.Vendor)),
		zap.Float64("confidence", r.Detection.Confidence),
		zap.String("provider", string(r.Vendor)),
		zap.Bool("parsed", parsed),
		zap.Int("errors", len(r.Validation.Errors)),
		zap.Int("warnings", len(r.Validation.Warnings)))
	in.cache.Add(key, r)
	return r, nil
}

// Explain returns every vendor's raw score for text, or nil when text is not
// a JSON object.
func (in *Inspector) Explain(text string) []core.Detection {
	return in.det.Scores(text)
}

// Purge drops all memoized reports.
func (in *Inspector) Purge() { in.cache.Purge() }

func cacheKey(text string, override core.Vendor) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(override))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(text)
	return d.Sum64()
}
