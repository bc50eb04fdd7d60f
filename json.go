package typed

import (
	"bytes"
	"context"

	j "github.com/goccy/go-json"

	"github.com/typedkit/typed/i18n"
)

// FromJSON decodes a JSON object and constructs a validated instance from it.
// Numbers are decoded as json.Number so integer and float fields keep their
// wire form without lossy coercion.
func (r *Registry) FromJSON(ctx context.Context, data []byte) (*Instance, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err}}
	}
	return r.New(ctx, m)
}

// JSON serializes the instance with fields emitted in declaration order.
// Nested instances serialize through their own registries, so the whole tree
// keeps declaration order.
func (in *Instance) JSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := in.appendJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (in *Instance) appendJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	first := true
	for _, name := range in.reg.order {
		v, ok := in.values[name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := j.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := appendJSONValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func appendJSONValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *Instance:
		return t.appendJSON(buf)
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSONValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := j.Marshal(plainValue(v))
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}
