package providers

import (
	core "edit0r/internal/core"
)

// NewProvider returns the strategy for a vendor, or nil for unknown tags.
func NewProvider(id core.Vendor) Provider {
	switch id {
	case core.VendorOpenAI:
		return openAI{}
	case core.VendorAnthropic:
		return anthropic{}
	case core.VendorVertexAI:
		return vertexAI{}
	case core.VendorAzureOpenAI:
		return azureOpenAI{}
	case core.VendorGroq:
		return groq{}
	case core.VendorTogetherAI:
		return togetherAI{}
	case core.VendorFireworks:
		return fireworks{}
	case core.VendorAnyscale:
		return anyscale{}
	case core.VendorPerplexity:
		return perplexity{}
	case core.VendorOpenRouter:
		return openRouter{}
	case core.VendorReplicate:
		return replicate{}
	case core.VendorLocalAI:
		return localAI{}
	case core.VendorGeneric:
		return generic{}
	default:
		return nil
	}
}

// Registered returns the scoring strategies in registration order. Generic
// is the fallback and never scores, so it is not included. The order only
// matters for breaking exact confidence ties.
func Registered() []Provider {
	out := make([]Provider, 0, len(core.Vendors)-1)
	for _, id := range core.Vendors {
		if id == core.VendorGeneric {
			continue
		}
		out = append(out, NewProvider(id))
	}
	return out
}
