package inspect

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var errInvalidJSON = errors.New("not valid JSON")

type InputFormat string

const (
	InputAuto InputFormat = "auto"
	InputJSON InputFormat = "json"
	InputYAML InputFormat = "yaml"
)

func ParseInputFormat(s string) (InputFormat, error) {
	switch f := InputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", InputAuto:
		return InputAuto, nil
	case InputJSON, InputYAML:
		return f, nil
	case "yml":
		return InputYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, json or yaml)", s)
	}
}

// FormatForPath narrows auto by file extension.
func FormatForPath(f InputFormat, path string) InputFormat {
	if f != InputAuto {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return InputYAML
	case ".json":
		return InputJSON
	}
	return InputAuto
}

// Normalize returns data as JSON text ready for detection. JSON passes
// through untouched so malformed input still reaches the detector. In auto
// mode text that looks like JSON is kept, and YAML is converted only when it
// decodes to a mapping.
func Normalize(data []byte, f InputFormat) (string, error) {
	switch f {
	case InputJSON:
		return string(data), nil
	case InputYAML:
		return yamlToJSON(data)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '{' || trimmed[0] == '[' {
		return string(data), nil
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return string(data), nil
	}
	if _, ok := v.(map[string]any); !ok {
		return string(data), nil
	}
	out, err := json.Marshal(jsonable(v))
	if err != nil {
		return string(data), nil
	}
	return string(out), nil
}

func yamlToJSON(data []byte) (string, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("parse yaml: %w", err)
	}
	out, err := json.Marshal(jsonable(v))
	if err != nil {
		return "", fmt.Errorf("convert yaml: %w", err)
	}
	return string(out), nil
}

// jsonable rewrites non-string mapping keys, which JSON cannot carry.
func jsonable(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = jsonable(x)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, x := range t {
			m[fmt.Sprint(k)] = jsonable(x)
		}
		return m
	case []any:
		for i, x := range t {
			t[i] = jsonable(x)
		}
		return t
	default:
		return v
	}
}

// Format pretty-prints JSON text with two-space indentation.
func Format(text string) (string, error) {
	src := []byte(strings.TrimSpace(text))
	if !stdjson.Valid(src) {
		return "", errInvalidJSON
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, src, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
