package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "edit0r/internal/core"
	"edit0r/internal/detector"
)

func obj(t *testing.T, text string) any {
	t.Helper()
	v, ok := detector.Parse(text)
	require.True(t, ok, "fixture must parse: %s", text)
	return v
}

func fields(issues []core.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Field)
	}
	return out
}

func TestOpenAICompatible(t *testing.T) {
	v := New()

	t.Run("valid config", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"user","content":"Hello"}]}`), core.VendorOpenAI)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
	})

	t.Run("missing model", func(t *testing.T) {
		res := v.Validate(obj(t, `{"messages":[{"role":"user","content":"Hello"}]}`), core.VendorOpenAI)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, core.Issue{Field: "model", Message: "Missing required field: model", Severity: core.SeverityError})
	})

	t.Run("model must be a string", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":4,"messages":[{"role":"user","content":"Hello"}]}`), core.VendorOpenAI)
		assert.Equal(t, []string{"model"}, fields(res.Errors))
		assert.Equal(t, `Field "model" must be a string`, res.Errors[0].Message)
	})

	t.Run("missing messages", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4"}`), core.VendorOpenAI)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, core.Issue{Field: "messages", Message: "Missing required field: messages", Severity: core.SeverityError})
	})

	t.Run("missing role", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","messages":[{"content":"Hello"}]}`), core.VendorOpenAI)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, core.Issue{Field: "messages[0].role", Message: "Missing required field: role", Severity: core.SeverityError})
	})

	t.Run("invalid role names the value", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"invalid","content":"Hello"}]}`), core.VendorOpenAI)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "messages[0].role", res.Errors[0].Field)
		assert.Contains(t, res.Errors[0].Message, "Invalid role")
		assert.Contains(t, res.Errors[0].Message, `"invalid"`)
	})

	t.Run("message must be an object", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","messages":["hi",null,[]]}`), core.VendorOpenAI)
		assert.Equal(t, []string{"messages[0]", "messages[1]", "messages[2]"}, fields(res.Errors))
		for _, e := range res.Errors {
			assert.Equal(t, "Message must be an object", e.Message)
		}
	})

	t.Run("message without content", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"user"}]}`), core.VendorOpenAI)
		assert.Equal(t, []string{"messages[0].content"}, fields(res.Errors))
	})

	t.Run("function_call and tool_calls stand in for content", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"assistant","function_call":{"name":"test"}},{"role":"assistant","tool_calls":[]}]}`), core.VendorOpenAI)
		assert.True(t, res.Valid)
	})

	t.Run("temperature", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"user","content":"Hello"}],"temperature":5}`), core.VendorOpenAI)
		assert.True(t, res.Valid)
		assert.Contains(t, res.Warnings, core.Issue{Field: "temperature", Message: "Temperature should be between 0 and 2", Severity: core.SeverityWarning})

		res = v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"user","content":"Hello"}],"temperature":"hot"}`), core.VendorOpenAI)
		assert.Equal(t, []string{"temperature"}, fields(res.Errors))
	})

	t.Run("max_tokens must be numeric", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"user","content":"Hello"}],"max_tokens":"100"}`), core.VendorOpenAI)
		assert.Equal(t, []string{"max_tokens"}, fields(res.Errors))
	})
}

func TestVendorModelHints(t *testing.T) {
	v := New()
	msgs := `"messages":[{"role":"user","content":"Hello"}]`

	cases := []struct {
		vendor  core.Vendor
		model   string
		warning string
	}{
		{core.VendorGroq, "llama-3.3-70b-versatile", ""},
		{core.VendorGroq, "gpt-4", "Groq models"},
		{core.VendorPerplexity, "sonar-pro", ""},
		{core.VendorPerplexity, "gpt-4", "Perplexity models"},
		{core.VendorOpenRouter, "anthropic/claude-3-5-sonnet", ""},
		{core.VendorOpenRouter, "claude-3-5-sonnet", `"provider/model"`},
		{core.VendorFireworks, "accounts/fireworks/models/llama-v3p1-8b-instruct", ""},
		{core.VendorFireworks, "llama-v3p1", "accounts/"},
		{core.VendorTogetherAI, "meta-llama/Llama-3-70b-chat-hf", ""},
		{core.VendorTogetherAI, "llama-3", `"organization/model"`},
		{core.VendorAnyscale, "anything", ""},
		{core.VendorLocalAI, "anything", ""},
	}
	for _, tc := range cases {
		t.Run(string(tc.vendor)+"/"+tc.model, func(t *testing.T) {
			res := v.Validate(obj(t, `{"model":"`+tc.model+`",`+msgs+`}`), tc.vendor)
			assert.True(t, res.Valid, "model hints never produce errors")
			if tc.warning == "" {
				assert.Empty(t, res.Warnings)
				return
			}
			require.Len(t, res.Warnings, 1)
			assert.Equal(t, "model", res.Warnings[0].Field)
			assert.Contains(t, res.Warnings[0].Message, tc.warning)
		})
	}
}

func TestAnthropic(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"claude-3-5-sonnet-20241022","max_tokens":1024,"messages":[{"role":"user","content":"Hello"}]}`), core.VendorAnthropic)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
	})

	t.Run("max_tokens is required", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"claude-3-5-sonnet-20241022","messages":[{"role":"user","content":"Hi"}]}`), core.VendorAnthropic)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, core.Issue{
			Field:    "max_tokens",
			Message:  "Missing required field: max_tokens (required by Anthropic)",
			Severity: core.SeverityError,
		})
	})

	t.Run("tools with input_schema", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"claude-3-5-sonnet-20241022","max_tokens":1024,"messages":[{"role":"user","content":"Hello"}],"tools":[{"name":"get_weather","input_schema":{"type":"object"}}]}`), core.VendorAnthropic)
		assert.True(t, res.Valid)
	})

	t.Run("tools with parameters", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"claude-3-5-sonnet-20241022","max_tokens":1024,"messages":[{"role":"user","content":"Hi"}],"tools":[{"name":"x","parameters":{"type":"object"}}]}`), core.VendorAnthropic)
		assert.False(t, res.Valid)
		assert.Equal(t, []core.Issue{{
			Field:    "tools[0].input_schema",
			Message:  `Anthropic tools require "input_schema" (not "parameters")`,
			Severity: core.SeverityError,
		}}, res.Errors)
	})

	t.Run("tools must be an array", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"claude-3-5-sonnet-20241022","max_tokens":1024,"messages":[],"tools":{"name":"x"}}`), core.VendorAnthropic)
		assert.Equal(t, []string{"tools"}, fields(res.Errors))
	})

	t.Run("non-claude model warns", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"gpt-4","max_tokens":1024,"messages":[{"role":"user","content":"Hello"}]}`), core.VendorAnthropic)
		assert.True(t, res.Valid)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "model", res.Warnings[0].Field)
		assert.Contains(t, res.Warnings[0].Message, "claude-")
	})

	t.Run("system role in messages warns", func(t *testing.T) {
		res := v.Validate(obj(t, `{"model":"claude-3-haiku-20240307","max_tokens":10,"messages":[{"role":"system","content":"be brief"},{"role":"user","content":"Hi"}]}`), core.VendorAnthropic)
		assert.True(t, res.Valid)
		assert.Equal(t, []string{"messages[0].role"}, fields(res.Warnings))
	})

	t.Run("every defect is reported", func(t *testing.T) {
		res := v.Validate(obj(t, `{"tools":[{"name":"a"},{"name":"b","input_schema":{}},{"name":"c"}]}`), core.VendorAnthropic)
		assert.Equal(t, []string{"model", "max_tokens", "messages", "tools[0].input_schema", "tools[2].input_schema"}, fields(res.Errors))
	})
}

func TestVertexAI(t *testing.T) {
	v := New()

	res := v.Validate(obj(t, `{"model":"gemini-pro","contents":[{"role":"user","parts":[{"text":"Hello"}]}]}`), core.VendorVertexAI)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Warnings)

	res = v.Validate(obj(t, `{"model":"gemini-pro","messages":[{"role":"user","content":"Hello"}]}`), core.VendorVertexAI)
	assert.True(t, res.Valid)
	assert.Contains(t, res.Warnings, core.Issue{Field: "contents", Message: `Vertex AI uses "contents" field (not "messages")`, Severity: core.SeverityWarning})

	res = v.Validate(obj(t, `{"model":"gpt-4","contents":[]}`), core.VendorVertexAI)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "model", res.Warnings[0].Field)
	assert.Contains(t, res.Warnings[0].Message, "gemini")

	res = v.Validate(obj(t, `{"function_declarations":{"name":"f"}}`), core.VendorVertexAI)
	assert.Equal(t, []string{"model", "function_declarations"}, fields(res.Errors))
}

func TestAzureOpenAI(t *testing.T) {
	v := New()

	res := v.Validate(obj(t, `{"deployment_id":"prod-gpt4","messages":[{"role":"user","content":"Hi"}]}`), core.VendorAzureOpenAI)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Warnings)

	res = v.Validate(obj(t, `{"messages":[{"role":"user","content":"Hi"}]}`), core.VendorAzureOpenAI)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"model"}, fields(res.Warnings))
	assert.Equal(t, []string{"model"}, fields(res.Errors))

	// The rest of the OpenAI path still applies.
	res = v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"robot","content":"Hi"}],"temperature":3}`), core.VendorAzureOpenAI)
	assert.Equal(t, []string{"messages[0].role"}, fields(res.Errors))
	assert.Equal(t, []string{"temperature"}, fields(res.Warnings))
}

func TestReplicate(t *testing.T) {
	v := New()

	res := v.Validate(obj(t, `{"model":"meta/llama-2-70b:abc123"}`), core.VendorReplicate)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Warnings)

	res = v.Validate(obj(t, `{"model":"llama-2-70b"}`), core.VendorReplicate)
	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "owner/model:version")

	res = v.Validate(obj(t, `{"input":{}}`), core.VendorReplicate)
	assert.Equal(t, []string{"model"}, fields(res.Errors))
}

func TestNonObjectRoot(t *testing.T) {
	v := New()
	for _, cfg := range []any{"not an object", nil, []any{}, 3.5, true} {
		for _, vendor := range core.Vendors {
			res := v.Validate(cfg, vendor)
			assert.False(t, res.Valid)
			assert.Equal(t, []core.Issue{{Field: "root", Message: "Config must be a valid JSON object", Severity: core.SeverityError}}, res.Errors)
			assert.Empty(t, res.Warnings)
		}
	}
}

func TestGenericSkipsValidation(t *testing.T) {
	res := New().Validate(obj(t, `{"anything":"goes","messages":"nope"}`), core.VendorGeneric)
	assert.Equal(t, core.Result{Valid: true, Errors: []core.Issue{}, Warnings: []core.Issue{}}, res)
}

func TestMultipleDefectsAccumulate(t *testing.T) {
	v := New()

	res := v.Validate(obj(t, `{"messages":"not-an-array","temperature":10}`), core.VendorOpenAI)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"model", "messages"}, fields(res.Errors))
	assert.Equal(t, []string{"temperature"}, fields(res.Warnings))

	res = v.Validate(obj(t, `{"model":"gpt-4","messages":[{"role":"user","content":"Valid"},{"role":"invalid-role","content":"x"},{"content":"Missing role"}]}`), core.VendorOpenAI)
	assert.Equal(t, []string{"messages[1].role", "messages[2].role"}, fields(res.Errors))
}

func TestValidMatchesErrors(t *testing.T) {
	v := New()
	inputs := []string{
		`{}`,
		`{"model":"gpt-4","messages":[]}`,
		`{"model":"x","max_tokens":1,"messages":[1]}`,
		`{"model":"gemini","contents":[]}`,
	}
	for _, text := range inputs {
		for _, vendor := range core.Vendors {
			res := v.Validate(obj(t, text), vendor)
			assert.Equal(t, len(res.Errors) == 0, res.Valid, "%s/%s", vendor, text)
		}
	}
}

func TestUnknownVendorPanics(t *testing.T) {
	assert.PanicsWithValue(t, `validator: unknown provider "cohere"`, func() {
		New().Validate(map[string]any{}, core.Vendor("cohere"))
	})
}

// The detector's output feeds straight into the validator.
func TestDetectThenValidate(t *testing.T) {
	text := `{"model":"gpt-4","messages":[{"role":"user","content":"Hello"}]}`
	det := detector.New().Detect(text)
	require.Equal(t, core.VendorOpenAI, det.Vendor)
	res := New().Validate(obj(t, text), det.Vendor)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}
