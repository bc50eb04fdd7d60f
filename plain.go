package typed

import "context"

// Plain produces the nested plain-data representation of the instance: a
// mapping from field name to value with nested instances converted to nested
// maps. Unset fields are omitted. The result shares no state with the
// instance beyond interior values the caller supplied.
func (in *Instance) Plain() map[string]any {
	out := make(map[string]any, len(in.values))
	for _, name := range in.reg.order {
		v, ok := in.values[name]
		if !ok {
			continue
		}
		out[name] = plainValue(v)
	}
	return out
}

// FromPlain constructs an instance from a plain-data mapping. It is the same
// routine as New: nested maps recurse through nested class registries inside
// the validator, so for any instance x, FromPlain(x.Plain()) round-trips.
func (r *Registry) FromPlain(ctx context.Context, data map[string]any) (*Instance, error) {
	return r.New(ctx, data)
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Instance:
		return t.Plain()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	default:
		return v
	}
}
