package typed

import (
	"context"

	"github.com/typedkit/typed/i18n"
)

// Presence is the bit flag recording how a field value came to be set.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field was supplied by the caller.
	PresenceDefaultApplied                      // Default value was applied.
)

// Instance is the finalized value mapping of one constructed object. State is
// owned exclusively by the instance; every mutation goes through Set/Unset so
// the immutability, type, choice, and validator invariants hold for the whole
// lifetime.
type Instance struct {
	reg      *Registry
	values   map[string]any
	presence map[string]Presence
}

// Registry returns the class registry this instance conforms to.
func (in *Instance) Registry() *Registry { return in.reg }

// Fields returns the declared field names in declaration order.
func (in *Instance) Fields() []string { return in.reg.Fields() }

// Get returns the finalized value of a field. ok is false for fields that are
// unset (omitted, optional, and without a default).
func (in *Instance) Get(name string) (any, bool) {
	v, ok := in.values[name]
	return v, ok
}

// Has reports whether the field currently holds a value.
func (in *Instance) Has(name string) bool {
	_, ok := in.values[name]
	return ok
}

// Presence returns the presence bits recorded for the field.
func (in *Instance) Presence(name string) Presence { return in.presence[name] }

// Set assigns a new value to a field, re-running the type, choice, and
// validator checks. Assigning an immutable field that already holds a value
// fails and leaves the stored value untouched; this includes values that came
// from a default.
func (in *Instance) Set(ctx context.Context, name string, value any) error {
	spec, ok := in.reg.specs[name]
	if !ok {
		return Issues{Issue{Path: "/" + name, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil), Hint: "field is not declared on class " + in.reg.name}}
	}
	if spec.Immutable {
		if _, present := in.values[name]; present {
			return Issues{Issue{Path: "/" + name, Code: CodeImmutable, Message: i18n.T(CodeImmutable, nil)}}
		}
	}
	parsed, iss := checkField(ctx, name, spec, value)
	if len(iss) > 0 {
		return iss
	}
	in.values[name] = parsed
	in.presence[name] = PresenceSeen
	return nil
}

// Unset clears a mutable, non-required field. Immutable fields cannot be
// cleared; clearing a required field would leave the instance invalid.
func (in *Instance) Unset(name string) error {
	spec, ok := in.reg.specs[name]
	if !ok {
		return Issues{Issue{Path: "/" + name, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil), Hint: "field is not declared on class " + in.reg.name}}
	}
	if spec.Immutable {
		return Issues{Issue{Path: "/" + name, Code: CodeImmutable, Message: i18n.T(CodeImmutable, nil)}}
	}
	if spec.Required {
		return Issues{Issue{Path: "/" + name, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required field cannot be unset"}}
	}
	delete(in.values, name)
	delete(in.presence, name)
	return nil
}
