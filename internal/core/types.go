package core

import (
	"errors"
	"fmt"
	"strings"
)

// Vendor identifies an AI-model hosting service by the shape of its config.
type Vendor string

const (
	VendorOpenAI      Vendor = "openai"
	VendorAnthropic   Vendor = "anthropic"
	VendorVertexAI    Vendor = "vertex-ai"
	VendorAzureOpenAI Vendor = "azure-openai"
	VendorGroq        Vendor = "groq"
	VendorTogetherAI  Vendor = "together-ai"
	VendorFireworks   Vendor = "fireworks"
	VendorAnyscale    Vendor = "anyscale"
	VendorPerplexity  Vendor = "perplexity"
	VendorOpenRouter  Vendor = "openrouter"
	VendorReplicate   Vendor = "replicate"
	VendorLocalAI     Vendor = "local-ai"
	VendorGeneric     Vendor = "generic"
)

// ErrUnknownVendor is returned by ParseVendor for tags outside the closed set.
var ErrUnknownVendor = errors.New("unknown provider")

// Vendors is the closed set of tags in registration order. Generic is last.
var Vendors = []Vendor{
	VendorOpenAI,
	VendorAnthropic,
	VendorVertexAI,
	VendorAzureOpenAI,
	VendorGroq,
	VendorTogetherAI,
	VendorFireworks,
	VendorAnyscale,
	VendorPerplexity,
	VendorOpenRouter,
	VendorReplicate,
	VendorLocalAI,
	VendorGeneric,
}

func (v Vendor) String() string { return string(v) }

// Known reports whether v belongs to the closed tag set.
func (v Vendor) Known() bool {
	for _, k := range Vendors {
		if k == v {
			return true
		}
	}
	return false
}

// ParseVendor maps user input to a tag.
func ParseVendor(s string) (Vendor, error) {
	v := Vendor(strings.ToLower(strings.TrimSpace(s)))
	if !v.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVendor, s)
	}
	return v, nil
}

// Detection is the outcome of scoring one config against vendor signatures.
type Detection struct {
	Vendor     Vendor   `json:"provider"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators"`
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one defect found by the validator. Field is a dotted,
// bracket-indexed path such as messages[2].role.
type Issue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result is the validator output. Valid is true iff Errors is empty.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}
