package core

// Signature is the static, read-only metadata of one vendor.
type Signature struct {
	Vendor      Vendor
	DisplayName string
	Description string
	Color       string // hex, used for badges and borders
	Icon        string
	// Family marks vendors sharing the OpenAI chat-completion shape.
	Family bool
}

var signatures = map[Vendor]Signature{
	VendorOpenAI: {
		Vendor: VendorOpenAI, DisplayName: "OpenAI", Family: true,
		Description: "OpenAI GPT models with function calling",
		Color:       "#22c55e", Icon: "🤖",
	},
	VendorAnthropic: {
		Vendor: VendorAnthropic, DisplayName: "Anthropic",
		Description: "Anthropic Claude models with tools",
		Color:       "#f97316", Icon: "🔮",
	},
	VendorVertexAI: {
		Vendor: VendorVertexAI, DisplayName: "Vertex AI",
		Description: "Google Gemini models on Vertex AI",
		Color:       "#3b82f6", Icon: "🔷",
	},
	VendorAzureOpenAI: {
		Vendor: VendorAzureOpenAI, DisplayName: "Azure OpenAI", Family: true,
		Description: "Azure-hosted OpenAI models",
		Color:       "#a855f7", Icon: "☁️",
	},
	VendorGroq: {
		Vendor: VendorGroq, DisplayName: "Groq", Family: true,
		Description: "Groq LPU ultra-fast inference",
		Color:       "#ef4444", Icon: "⚡",
	},
	VendorTogetherAI: {
		Vendor: VendorTogetherAI, DisplayName: "Together AI", Family: true,
		Description: "Together AI open source models",
		Color:       "#14b8a6", Icon: "🤝",
	},
	VendorFireworks: {
		Vendor: VendorFireworks, DisplayName: "Fireworks", Family: true,
		Description: "Fireworks high-performance inference",
		Color:       "#f59e0b", Icon: "🎆",
	},
	VendorAnyscale: {
		Vendor: VendorAnyscale, DisplayName: "Anyscale", Family: true,
		Description: "Anyscale Ray-based scaling",
		Color:       "#06b6d4", Icon: "📈",
	},
	VendorPerplexity: {
		Vendor: VendorPerplexity, DisplayName: "Perplexity", Family: true,
		Description: "Perplexity search-augmented LLMs",
		Color:       "#6366f1", Icon: "🔎",
	},
	VendorOpenRouter: {
		Vendor: VendorOpenRouter, DisplayName: "OpenRouter", Family: true,
		Description: "OpenRouter multi-provider gateway",
		Color:       "#8b5cf6", Icon: "🔀",
	},
	VendorReplicate: {
		Vendor: VendorReplicate, DisplayName: "Replicate",
		Description: "Replicate open source model marketplace",
		Color:       "#ec4899", Icon: "🧬",
	},
	VendorLocalAI: {
		Vendor: VendorLocalAI, DisplayName: "LocalAI", Family: true,
		Description: "LocalAI self-hosted OpenAI API",
		Color:       "#64748b", Icon: "🏠",
	},
	VendorGeneric: {
		Vendor: VendorGeneric, DisplayName: "Generic",
		Description: "Generic JSON configuration",
		Color:       "#9ca3af", Icon: "📄",
	},
}

// SignatureFor returns the signature of v, falling back to generic.
func SignatureFor(v Vendor) Signature {
	if s, ok := signatures[v]; ok {
		return s
	}
	return signatures[VendorGeneric]
}

// Supported lists every vendor signature in registration order.
func Supported() []Signature {
	out := make([]Signature, 0, len(Vendors))
	for _, v := range Vendors {
		out = append(out, signatures[v])
	}
	return out
}
