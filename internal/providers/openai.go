package providers

import (
	"fmt"
	"strings"

	core "edit0r/internal/core"
)

const (
	wOpenAIModel         = 0.5
	wOpenAIInModelName   = 0.3
	wOpenAIFunctions     = 0.3
	wOpenAIFunctionShape = 0.2
	wOpenAIToolShape     = 0.3
	wOpenAIFunctionCall  = 0.4
	wOpenAIResponseFmt   = 0.2
)

var openAIModelPrefixes = []string{"gpt-", "chatgpt-", "o1", "o3", "o4-"}

type openAI struct{}

func (openAI) ID() core.Vendor { return core.VendorOpenAI }

func (openAI) Score(cfg map[string]any) core.Detection {
	var t tally
	if model, ok := str(cfg, "model"); ok && model != "" {
		if hasAnyPrefix(model, openAIModelPrefixes...) {
			t.hit(wOpenAIModel, "Model: "+model)
		}
		if strings.Contains(model, "openai") {
			t.hit(wOpenAIInModelName, "OpenAI in model name")
		}
	}
	if fns, ok := array(cfg["functions"]); ok {
		t.hit(wOpenAIFunctions, "functions array present")
		if len(fns) > 0 {
			if fn, ok := object(fns[0]); ok && truthy(fn["parameters"]) {
				t.hit(wOpenAIFunctionShape, "OpenAI function schema structure")
			}
		}
	}
	if tool, ok := firstObject(cfg, "tools"); ok {
		if typ, _ := tool["type"].(string); typ == "function" {
			if _, ok := object(tool["function"]); ok {
				t.hit(wOpenAIToolShape, "OpenAI tools schema (function)")
			}
		}
	}
	if _, ok := cfg["function_call"]; ok {
		t.hit(wOpenAIFunctionCall, "function_call field")
	}
	if rf, ok := object(cfg["response_format"]); ok {
		if typ, _ := rf["type"].(string); typ == "json_object" || typ == "json_schema" {
			t.hit(wOpenAIResponseFmt, "response_format.type = "+typ)
		}
	}
	return t.detection(core.VendorOpenAI)
}

func (openAI) Validate(cfg map[string]any, r *core.Report) {
	validateChat(cfg, chatRules{requireModel: true}, r)
}

var chatRoles = []string{"system", "user", "assistant", "function", "tool"}

// chatRules tunes the shared chat-completion checks for one vendor.
type chatRules struct {
	requireModel bool
	// modelHint returns a warning when the lowercased model name does not
	// look like the vendor's catalog. Catalogs change, so never an error.
	modelHint func(model string) string
}

// validateChat checks the chat-completion shape shared by the OpenAI family.
func validateChat(cfg map[string]any, rules chatRules, r *core.Report) {
	model := cfg["model"]
	if !truthy(model) {
		if rules.requireModel {
			r.Error("model", "Missing required field: model")
		}
	} else if _, ok := model.(string); !ok {
		r.Error("model", `Field "model" must be a string`)
	}

	msgs := cfg["messages"]
	if !truthy(msgs) {
		r.Error("messages", "Missing required field: messages")
	} else if list, ok := array(msgs); !ok {
		r.Error("messages", `Field "messages" must be an array`)
	} else {
		for i, raw := range list {
			validateMessage(core.Index("messages", i), raw, r)
		}
	}

	if s, ok := model.(string); ok && s != "" && rules.modelHint != nil {
		if msg := rules.modelHint(strings.ToLower(s)); msg != "" {
			r.Warn("model", msg)
		}
	}

	if v, ok := cfg["temperature"]; ok {
		if n, isNum := number(v); !isNum {
			r.Error("temperature", `Field "temperature" must be a number`)
		} else if n < 0 || n > 2 {
			r.Warn("temperature", "Temperature should be between 0 and 2")
		}
	}

	if v, ok := cfg["max_tokens"]; ok {
		if _, isNum := number(v); !isNum {
			r.Error("max_tokens", `Field "max_tokens" must be a number`)
		}
	}
}

func validateMessage(path string, raw any, r *core.Report) {
	msg, ok := object(raw)
	if !ok {
		r.Error(path, "Message must be an object")
		return
	}
	role := msg["role"]
	if !truthy(role) {
		r.Error(core.Join(path, "role"), "Missing required field: role")
	} else if s, isStr := role.(string); !isStr || !oneOf(s, chatRoles) {
		r.Error(core.Join(path, "role"),
			fmt.Sprintf("Invalid role: %q. Must be system, user, assistant, function, or tool", fmt.Sprint(role)))
	}
	if !truthy(msg["content"]) && !truthy(msg["function_call"]) && !truthy(msg["tool_calls"]) {
		r.Error(core.Join(path, "content"), "Missing required field: content (or function_call/tool_calls)")
	}
}

func oneOf(s string, set []string) bool {
	for _, x := range set {
		if s == x {
			return true
		}
	}
	return false
}
