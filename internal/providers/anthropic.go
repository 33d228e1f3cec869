package providers

import (
	"strings"

	core "edit0r/internal/core"
)

const (
	wClaudeModel         = 0.6
	wAnthropicInModel    = 0.3
	wAnthropicTools      = 0.3
	wAnthropicToolSchema = 0.3
	wAnthropicToolChoice = 0.2
	wAnthropicMaxTokens  = 0.1
)

type anthropic struct{}

func (anthropic) ID() core.Vendor { return core.VendorAnthropic }

func (anthropic) Score(cfg map[string]any) core.Detection {
	var t tally
	if model, ok := str(cfg, "model"); ok && model != "" {
		if strings.HasPrefix(model, "claude-") {
			t.hit(wClaudeModel, "Model: "+model)
		}
		if strings.Contains(model, "anthropic") {
			t.hit(wAnthropicInModel, "Anthropic in model name")
		}
	}
	if _, ok := array(cfg["tools"]); ok {
		t.hit(wAnthropicTools, "tools array present")
		if tool, ok := firstObject(cfg, "tools"); ok && truthy(tool["input_schema"]) {
			t.hit(wAnthropicToolSchema, "Anthropic tools schema (input_schema)")
		}
	}
	if _, ok := cfg["tool_choice"]; ok {
		t.hit(wAnthropicToolChoice, "tool_choice field")
	}
	// max_tokens is mandatory here and optional for OpenAI, which prefers
	// max_completion_tokens on newer models.
	if truthy(cfg["max_tokens"]) && !truthy(cfg["max_completion_tokens"]) {
		t.hit(wAnthropicMaxTokens, "max_tokens field (Anthropic style)")
	}
	return t.detection(core.VendorAnthropic)
}

func (anthropic) Validate(cfg map[string]any, r *core.Report) {
	model := cfg["model"]
	if !truthy(model) {
		r.Error("model", "Missing required field: model")
	} else if s, ok := model.(string); ok && !strings.HasPrefix(s, "claude-") {
		r.Warn("model", `Anthropic models typically start with "claude-"`)
	}

	if !truthy(cfg["max_tokens"]) {
		r.Error("max_tokens", "Missing required field: max_tokens (required by Anthropic)")
	}

	msgs := cfg["messages"]
	if !truthy(msgs) {
		r.Error("messages", "Missing required field: messages")
	} else if list, ok := array(msgs); !ok {
		r.Error("messages", `Field "messages" must be an array`)
	} else {
		for i, raw := range list {
			m, ok := object(raw)
			if !ok {
				continue
			}
			if role, _ := m["role"].(string); role == "system" {
				r.Warn(core.Join(core.Index("messages", i), "role"),
					`Anthropic takes the system prompt in the top-level "system" field`)
			}
		}
	}

	tools := cfg["tools"]
	if list, ok := array(tools); ok {
		for i, raw := range list {
			tool, ok := object(raw)
			if !ok {
				continue
			}
			if !truthy(tool["input_schema"]) {
				r.Error(core.Join(core.Index("tools", i), "input_schema"),
					`Anthropic tools require "input_schema" (not "parameters")`)
			}
		}
	} else if truthy(tools) {
		r.Error("tools", `Field "tools" must be an array`)
	}
}
