package providers

import (
	core "edit0r/internal/core"
)

// generic is the universal fallback. It never scores and never validates.
type generic struct{}

func (generic) ID() core.Vendor { return core.VendorGeneric }

func (generic) Score(map[string]any) core.Detection {
	return core.Detection{Vendor: core.VendorGeneric, Indicators: []string{}}
}

func (generic) Validate(map[string]any, *core.Report) {}
