package providers

import (
	"strings"

	core "edit0r/internal/core"
)

const (
	wGeminiModel          = 0.6
	wVertexInModel        = 0.3
	wFunctionDeclarations = 0.5
	wGenerationConfig     = 0.3
	wContentsParts        = 0.4
)

type vertexAI struct{}

func (vertexAI) ID() core.Vendor { return core.VendorVertexAI }

func (vertexAI) Score(cfg map[string]any) core.Detection {
	var t tally
	if model, ok := str(cfg, "model"); ok && model != "" {
		if strings.Contains(model, "gemini") {
			t.hit(wGeminiModel, "Model: "+model)
		}
		if strings.Contains(model, "vertex") {
			t.hit(wVertexInModel, "Vertex in model name")
		}
	}
	if _, ok := array(cfg["function_declarations"]); ok {
		t.hit(wFunctionDeclarations, "function_declarations array")
	}
	if truthy(cfg["generation_config"]) || truthy(cfg["generationConfig"]) {
		t.hit(wGenerationConfig, "generation_config object")
	}
	if c, ok := firstObject(cfg, "contents"); ok {
		if _, ok := array(c["parts"]); ok {
			t.hit(wContentsParts, "contents/parts message shape")
		}
	}
	return t.detection(core.VendorVertexAI)
}

func (vertexAI) Validate(cfg map[string]any, r *core.Report) {
	model := cfg["model"]
	if !truthy(model) {
		r.Error("model", "Missing required field: model")
	} else if s, ok := model.(string); ok && !strings.Contains(s, "gemini") {
		r.Warn("model", `Vertex AI models typically include "gemini"`)
	}

	// The chat shape converts into contents/parts, so this is a warning.
	if truthy(cfg["messages"]) && !truthy(cfg["contents"]) {
		r.Warn("contents", `Vertex AI uses "contents" field (not "messages")`)
	}

	if fd := cfg["function_declarations"]; truthy(fd) {
		if _, ok := array(fd); !ok {
			r.Error("function_declarations", `Field "function_declarations" must be an array`)
		}
	}
}
