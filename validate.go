package typed

import (
	"context"
	"fmt"
	"sort"

	"github.com/typedkit/typed/i18n"
)

// New constructs a validated instance from the supplied field values. Fields
// are processed in declaration order and validation is fail-fast: the first
// violating field aborts construction and no instance is produced. After all
// declared fields, undeclared supplied names are rejected (unknown_key) unless
// the registry was compiled with WithUnknownStrip.
func (r *Registry) New(ctx context.Context, supplied map[string]any) (*Instance, error) {
	in := &Instance{
		reg:      r,
		values:   make(map[string]any, len(r.order)),
		presence: make(map[string]Presence, len(r.order)),
	}
	for _, name := range r.order {
		spec := r.specs[name]
		if v, ok := supplied[name]; ok {
			parsed, iss := checkField(ctx, name, spec, v)
			if len(iss) > 0 {
				return nil, iss
			}
			in.values[name] = parsed
			in.presence[name] = PresenceSeen
			continue
		}
		if spec.HasDefault {
			parsed, iss := checkField(ctx, name, spec, spec.Default)
			if len(iss) > 0 {
				return nil, iss
			}
			in.values[name] = parsed
			in.presence[name] = PresenceDefaultApplied
			continue
		}
		if spec.Required {
			return nil, Issues{Issue{Path: "/" + name, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required field missing on class " + r.name}}
		}
		// optional without default: left unset
	}
	if iss := r.checkUnknown(supplied); len(iss) > 0 {
		return nil, iss
	}
	return in, nil
}

// checkUnknown rejects supplied names absent from the declaration, in sorted
// order for deterministic error selection.
func (r *Registry) checkUnknown(supplied map[string]any) Issues {
	if r.unknown == UnknownStrip {
		return nil
	}
	uks := make([]string, 0)
	for k := range supplied {
		if _, known := r.specs[k]; !known {
			uks = append(uks, k)
		}
	}
	if len(uks) == 0 {
		return nil
	}
	sort.Strings(uks)
	return Issues{Issue{Path: "/" + uks[0], Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil), Hint: "field is not declared on class " + r.name}}
}

// checkField applies the per-field routine: type check (with recursive
// construction for nested class types), then choices, then the validator
// predicate. The order is fixed and locked in by tests.
func checkField(ctx context.Context, name string, spec FieldSpec, v any) (any, Issues) {
	parsed, iss := checkType(ctx, name, spec, v)
	if len(iss) > 0 {
		return nil, iss
	}
	if spec.Choices != nil {
		found := false
		for _, c := range spec.Choices {
			if valueEqual(parsed, c) {
				found = true
				break
			}
		}
		if !found {
			return nil, Issues{Issue{Path: "/" + name, Code: CodeInvalidChoice, Message: i18n.T(CodeInvalidChoice, nil), Hint: fmt.Sprintf("got %v", parsed)}}
		}
	}
	if spec.Validate != nil {
		if !runValidate(spec.Validate, parsed) {
			return nil, Issues{Issue{Path: "/" + name, Code: CodeValidateFailed, Message: i18n.T(CodeValidateFailed, nil), Hint: fmt.Sprintf("got %v", parsed)}}
		}
	}
	return parsed, nil
}

// checkType verifies the candidate against the declared type. For class-backed
// types a raw map recurses into the nested class's own construction; child
// issues are rebased under the outer field so nested failures keep context.
func checkType(ctx context.Context, name string, spec FieldSpec, v any) (any, Issues) {
	if ct, ok := spec.Type.(classType); ok {
		nested, err := ct.registry()
		if err != nil {
			return nil, issuesFromErr("/"+name, err)
		}
		if m, isMap := v.(map[string]any); isMap {
			child, err := nested.New(ctx, m)
			if err != nil {
				if ci, ok := AsIssues(err); ok {
					return nil, rebaseIssues("/"+name, ci)
				}
				return nil, issuesFromErr("/"+name, err)
			}
			return child, nil
		}
		if inst, isInst := v.(*Instance); isInst && inst.reg == nested {
			return v, nil
		}
		return nil, typeMismatch(name, nested.name, v)
	}
	if !spec.Type.Accepts(v) {
		return nil, typeMismatch(name, spec.Type.Name(), v)
	}
	return v, nil
}

func typeMismatch(name, expected string, v any) Issues {
	return Issues{Issue{
		Path:    "/" + name,
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, nil),
		Hint:    fmt.Sprintf("expected %s, got %T", expected, v),
	}}
}

// runValidate invokes the user predicate, normalizing a panic to a rejection.
func runValidate(fn func(any) bool, v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn(v)
}
