package typed

import (
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/typedkit/typed/i18n"
)

// FromYAML decodes a YAML mapping and constructs a validated instance from
// it. yaml.v3 decodes nested mappings as map[string]any, which is exactly the
// plain-data shape New consumes.
func (r *Registry) FromYAML(ctx context.Context, data []byte) (*Instance, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err}}
	}
	return r.New(ctx, m)
}

// YAML serializes the instance's plain-data representation. json.Number
// values held by JSON-sourced instances are normalized to native numbers
// first; yaml.v3 would otherwise emit them as quoted strings, breaking the
// round trip through FromYAML.
func (in *Instance) YAML() ([]byte, error) {
	return yaml.Marshal(yamlValue(in.Plain()))
}

func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}
