package providers

import (
	"regexp"

	core "edit0r/internal/core"
)

const (
	wReplicateEndpoint = 0.6
	wReplicateModel    = 0.6
	wReplicateVersion  = 0.3
	wReplicateInput    = 0.3
)

// replicateModel matches owner/model:version. It is unanchored so that
// identifiers embedded in longer strings still count.
var replicateModel = regexp.MustCompile(`[a-z0-9-]+/[a-z0-9-]+:[a-z0-9]+`)

type replicate struct{}

func (replicate) ID() core.Vendor { return core.VendorReplicate }

func (replicate) Score(cfg map[string]any) core.Detection {
	var t tally
	if containsAny(endpoint(cfg), "replicate.com") {
		t.hit(wReplicateEndpoint, "Replicate endpoint detected")
	}
	if model, ok := str(cfg, "model"); ok && replicateModel.MatchString(model) {
		t.hit(wReplicateModel, "Replicate model: "+model)
	}
	if s, ok := str(cfg, "version"); ok && s != "" {
		t.hit(wReplicateVersion, "version field (Replicate prediction)")
	}
	if _, ok := object(cfg["input"]); ok {
		t.hit(wReplicateInput, "input object (Replicate prediction)")
	}
	return t.detection(core.VendorReplicate)
}

func (replicate) Validate(cfg map[string]any, r *core.Report) {
	model := cfg["model"]
	if !truthy(model) {
		r.Error("model", "Missing required field: model")
		return
	}
	// Partial identifiers may still resolve to the latest version.
	if s, ok := model.(string); ok && !replicateModel.MatchString(s) {
		r.Warn("model", `Replicate models typically use "owner/model:version" format`)
	}
}
