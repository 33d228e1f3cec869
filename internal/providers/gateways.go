package providers

import (
	"regexp"
	"strings"

	core "edit0r/internal/core"
)

// OpenAI-compatible gateways and inference hosts. They share the chat
// validation path and differ in endpoints and model naming.

const (
	wGatewayEndpoint   = 0.6
	wGroqModel         = 0.5
	wOpenWeightFamily  = 0.2
	wTogetherModel     = 0.6
	wFireworksModel    = 0.7
	wAnyscaleInModel   = 0.3
	wPerplexityModel   = 0.6
	wPerplexityOption  = 0.2
	wOpenRouterModel   = 0.4
	wOpenRouterRouting = 0.3
	wLocalEndpoint     = 0.5
	wLocalModelFile    = 0.5
	wLocalBackend      = 0.2
)

var openWeightFamilies = []string{"llama", "mixtral", "gemma"}

type groq struct{}

func (groq) ID() core.Vendor { return core.VendorGroq }

func (groq) Score(cfg map[string]any) core.Detection {
	var t tally
	if containsAny(endpoint(cfg), "groq.com") {
		t.hit(wGatewayEndpoint, "Groq endpoint detected")
	}
	if model, ok := str(cfg, "model"); ok && model != "" {
		lm := strings.ToLower(model)
		if strings.HasSuffix(lm, "-versatile") || strings.HasSuffix(lm, "-instant") || strings.Contains(lm, "groq") {
			t.hit(wGroqModel, "Groq model: "+model)
		}
		if containsAny(lm, openWeightFamilies...) {
			t.hit(wOpenWeightFamily, "Open-weight model family in model name")
		}
	}
	return t.detection(core.VendorGroq)
}

func (groq) Validate(cfg map[string]any, r *core.Report) {
	validateChat(cfg, chatRules{requireModel: true, modelHint: func(m string) string {
		if !containsAny(m, openWeightFamilies...) {
			return "Model name doesn't match typical Groq models (llama, mixtral, gemma)"
		}
		return ""
	}}, r)
}

type togetherAI struct{}

func (togetherAI) ID() core.Vendor { return core.VendorTogetherAI }

func (togetherAI) Score(cfg map[string]any) core.Detection {
	var t tally
	if containsAny(endpoint(cfg), "together.xyz", "together.ai") {
		t.hit(wGatewayEndpoint, "Together endpoint detected")
	}
	if model, ok := str(cfg, "model"); ok && strings.HasPrefix(strings.ToLower(model), "togethercomputer/") {
		t.hit(wTogetherModel, "Together model: "+model)
	}
	return t.detection(core.VendorTogetherAI)
}

func (togetherAI) Validate(cfg map[string]any, r *core.Report) {
	validateChat(cfg, chatRules{requireModel: true, modelHint: func(m string) string {
		if !strings.Contains(m, "/") {
			return `Together AI models typically use "organization/model" format`
		}
		return ""
	}}, r)
}

type fireworks struct{}

func (fireworks) ID() core.Vendor { return core.VendorFireworks }

func (fireworks) Score(cfg map[string]any) core.Detection {
	var t tally
	if containsAny(endpoint(cfg), "fireworks.ai") {
		t.hit(wGatewayEndpoint, "Fireworks endpoint detected")
	}
	if model, ok := str(cfg, "model"); ok && strings.HasPrefix(strings.ToLower(model), "accounts/fireworks/") {
		t.hit(wFireworksModel, "Fireworks model: "+model)
	}
	return t.detection(core.VendorFireworks)
}

func (fireworks) Validate(cfg map[string]any, r *core.Report) {
	validateChat(cfg, chatRules{requireModel: true, modelHint: func(m string) string {
		if !strings.HasPrefix(m, "accounts/") {
			return `Fireworks models typically use "accounts/<account>/models/<model>" format`
		}
		return ""
	}}, r)
}

type anyscale struct{}

func (anyscale) ID() core.Vendor { return core.VendorAnyscale }

func (anyscale) Score(cfg map[string]any) core.Detection {
	var t tally
	if containsAny(endpoint(cfg), "anyscale") {
		t.hit(wGatewayEndpoint, "Anyscale endpoint detected")
	}
	if model, ok := str(cfg, "model"); ok && strings.Contains(strings.ToLower(model), "anyscale") {
		t.hit(wAnyscaleInModel, "Anyscale in model name")
	}
	return t.detection(core.VendorAnyscale)
}

func (anyscale) Validate(cfg map[string]any, r *core.Report) {
	validateChat(cfg, chatRules{requireModel: true}, r)
}

var perplexityOptions = []string{"search_domain_filter", "search_recency_filter", "return_citations", "return_images"}

type perplexity struct{}

func (perplexity) ID() core.Vendor { return core.VendorPerplexity }

func (perplexity) Score(cfg map[string]any) core.Detection {
	var t tally
	if containsAny(endpoint(cfg), "perplexity.ai") {
		t.hit(wGatewayEndpoint, "Perplexity endpoint detected")
	}
	if model, ok := str(cfg, "model"); ok && model != "" {
		lm := strings.ToLower(model)
		if strings.Contains(lm, "sonar") || strings.HasPrefix(lm, "pplx-") {
			t.hit(wPerplexityModel, "Model: "+model)
		}
	}
	for _, f := range perplexityOptions {
		if present(cfg, f) {
			t.hit(wPerplexityOption, f+" field (Perplexity search option)")
		}
	}
	return t.detection(core.VendorPerplexity)
}

func (perplexity) Validate(cfg map[string]any, r *core.Report) {
	validateChat(cfg, chatRules{requireModel: true, modelHint: func(m string) string {
		if !strings.Contains(m, "sonar") && !strings.Contains(m, "pplx") {
			return "Model name doesn't match typical Perplexity models (sonar, pplx)"
		}
		return ""
	}}, r)
}

// openRouterModel matches "provider/model" with an optional routing variant.
var openRouterModel = regexp.MustCompile(`(?i)^[a-z0-9][\w.-]*/[\w.-]+(:(free|beta|extended|nitro|floor|online|thinking))?$`)

type openRouter struct{}

func (openRouter) ID() core.Vendor { return core.VendorOpenRouter }

func (openRouter) Score(cfg map[string]any) core.Detection {
	var t tally
	if containsAny(endpoint(cfg), "openrouter.ai") {
		t.hit(wGatewayEndpoint, "OpenRouter endpoint detected")
	}
	if model, ok := str(cfg, "model"); ok && openRouterModel.MatchString(model) {
		t.hit(wOpenRouterModel, "provider/model identifier: "+model)
	}
	if _, ok := array(cfg["transforms"]); ok {
		t.hit(wOpenRouterRouting, "transforms field (OpenRouter routing)")
	}
	if present(cfg, "route") {
		t.hit(wOpenRouterRouting, "route field (OpenRouter routing)")
	}
	if _, ok := array(cfg["models"]); ok {
		t.hit(wOpenRouterRouting, "models field (OpenRouter routing)")
	}
	return t.detection(core.VendorOpenRouter)
}

func (openRouter) Validate(cfg map[string]any, r *core.Report) {
	validateChat(cfg, chatRules{requireModel: true, modelHint: func(m string) string {
		if !strings.Contains(m, "/") {
			return `OpenRouter models typically use "provider/model" format`
		}
		return ""
	}}, r)
}

type localAI struct{}

func (localAI) ID() core.Vendor { return core.VendorLocalAI }

func (localAI) Score(cfg map[string]any) core.Detection {
	var t tally
	if containsAny(endpoint(cfg), "localhost", "127.0.0.1", "0.0.0.0") {
		t.hit(wLocalEndpoint, "Local endpoint detected")
	}
	if model, ok := str(cfg, "model"); ok && model != "" {
		lm := strings.ToLower(model)
		if strings.HasSuffix(lm, ".gguf") || strings.HasSuffix(lm, ".bin") || containsAny(lm, "ggml", "gguf") {
			t.hit(wLocalModelFile, "Local model file: "+model)
		}
	}
	if s, ok := str(cfg, "backend"); ok && s != "" {
		t.hit(wLocalBackend, "backend field (LocalAI style)")
	}
	return t.detection(core.VendorLocalAI)
}

func (localAI) Validate(cfg map[string]any, r *core.Report) {
	validateChat(cfg, chatRules{requireModel: true}, r)
}
