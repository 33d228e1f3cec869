// Package validator checks a parsed config against one vendor's conventions.
package validator

import (
	"fmt"

	core "edit0r/internal/core"
	"edit0r/internal/providers"
)

const rootMessage = "Config must be a valid JSON object"

// Validator is stateless and safe for concurrent use.
type Validator struct{}

func New() Validator { return Validator{} }

// Validate reports every defect of cfg for vendor v in a single pass.
// Errors make the result invalid; warnings never do.
//
// v must belong to the closed vendor set. An unknown tag is a programming
// error and panics.
func (Validator) Validate(cfg any, v core.Vendor) core.Result {
	p := providers.NewProvider(v)
	if p == nil {
		panic(fmt.Sprintf("validator: unknown provider %q", string(v)))
	}
	var r core.Report
	obj, ok := cfg.(map[string]any)
	if !ok {
		r.Error(core.RootField, rootMessage)
		return r.Result()
	}
	p.Validate(obj, &r)
	return r.Result()
}
