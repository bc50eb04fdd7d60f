package typed

import (
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// Bind projects a validated instance into a plain Go struct. Fields are
// matched by `json` struct tag (falling back to the field name). Nested
// instances bind into nested structs through their plain-data form.
func Bind[T any](in *Instance) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     &out,
		DecodeHook: jsonNumberHook,
	})
	if err != nil {
		return out, Issues{Issue{Path: "/", Code: CodeParseError, Message: "bind decoder setup failed", Cause: err}}
	}
	if err := dec.Decode(in.Plain()); err != nil {
		return out, Issues{Issue{Path: "/", Code: CodeParseError, Message: "bind failed", Cause: err}}
	}
	return out, nil
}

// jsonNumberHook converts json.Number values (produced by the JSON bridge)
// into the numeric kind of the destination struct field.
func jsonNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.ParseInt(string(n), 10, 64)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseUint(string(n), 10, 64)
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(string(n), 64)
	case reflect.String:
		return string(n), nil
	default:
		return data, nil
	}
}
