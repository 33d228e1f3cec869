package providers

import (
	core "edit0r/internal/core"
)

// Provider is the per-vendor strategy shared by the detector and the
// validator. Implementations hold no state.
type Provider interface {
	ID() core.Vendor
	// Score inspects a parsed config object and returns this vendor's
	// confidence with one indicator per matched signal, in check order.
	Score(cfg map[string]any) core.Detection
	// Validate appends every structural defect of cfg to r.
	Validate(cfg map[string]any, r *core.Report)
}
