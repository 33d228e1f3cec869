package providers

import (
	core "edit0r/internal/core"
)

const (
	wAzureEndpoint   = 0.6
	wAzureAPIVersion = 0.2
	wAzureDeployment = 0.3
	wAzureOpenAIBase = 0.2

	// azureOpenAIFloor is the OpenAI confidence above which OpenAI signals
	// corroborate Azure-specific fields.
	azureOpenAIFloor = 0.3
)

// azureOpenAI composes the OpenAI strategy: Azure configs carry the OpenAI
// request shape plus Azure-only fields.
type azureOpenAI struct {
	base openAI
}

func (azureOpenAI) ID() core.Vendor { return core.VendorAzureOpenAI }

func (a azureOpenAI) Score(cfg map[string]any) core.Detection {
	var t tally
	if truthy(cfg["azure_endpoint"]) || containsAny(endpoint(cfg), "azure") {
		t.hit(wAzureEndpoint, "Azure endpoint detected")
	}
	if truthy(cfg["api_version"]) {
		t.hit(wAzureAPIVersion, "api_version field (Azure style)")
	}
	if truthy(cfg["deployment_id"]) || truthy(cfg["deployment_name"]) {
		t.hit(wAzureDeployment, "deployment_id field")
	}
	if base := a.base.Score(cfg); base.Confidence > azureOpenAIFloor && t.score > 0 {
		t.indicators = append(t.indicators, base.Indicators...)
		t.score += wAzureOpenAIBase
	}
	return t.detection(core.VendorAzureOpenAI)
}

func (azureOpenAI) Validate(cfg map[string]any, r *core.Report) {
	hasDeployment := truthy(cfg["deployment_id"]) || truthy(cfg["deployment_name"])
	if !truthy(cfg["model"]) && !hasDeployment {
		r.Warn("model", `Azure OpenAI typically uses "model" or "deployment_id"`)
	}
	// A deployment identifies the target on its own; model is then optional.
	validateChat(cfg, chatRules{requireModel: !hasDeployment}, r)
}
