package typed

import (
	"github.com/typedkit/typed/i18n"
)

// FieldSpec is the resolved validation contract for one declared field. It is
// immutable once the registry is compiled.
type FieldSpec struct {
	// Type is the expected value shape.
	Type Type
	// Required rejects construction when the field is absent and has no default.
	Required bool
	// Immutable rejects reassignment once a value is present.
	Immutable bool
	// Choices restricts the value to one of its members (value equality).
	Choices []any
	// Validate is an optional predicate; false rejects the value.
	Validate func(v any) bool
	// Default is used when the field is omitted. Meaningful only when
	// HasDefault is true; nil is a legal default value.
	Default    any
	HasDefault bool
}

// FieldDecl is one declared attribute prior to resolution. Required and
// Immutable are tri-state: nil means resolution decides (strict mode fills
// unset flags with true). A bare annotation is a FieldDecl carrying only Name
// and Type; chained builder calls populate the rest.
type FieldDecl struct {
	Name       string
	Type       Type
	Required   *bool
	Immutable  *bool
	Choices    []any
	Validate   func(v any) bool
	Default    any
	HasDefault bool
}

// resolve produces the final FieldSpec. Unset required resolves to false when
// a default is declared (the default always satisfies it) and true otherwise;
// unset immutable resolves to the strict flag.
func (d FieldDecl) resolve(strict bool) FieldSpec {
	required := !d.HasDefault
	if d.Required != nil {
		required = *d.Required
	}
	immutable := strict
	if d.Immutable != nil {
		immutable = *d.Immutable
	}
	return FieldSpec{
		Type:       d.Type,
		Required:   required,
		Immutable:  immutable,
		Choices:    d.Choices,
		Validate:   d.Validate,
		Default:    d.Default,
		HasDefault: d.HasDefault,
	}
}

// check runs the class-definition-time validations. All violations are
// declaration errors so malformed specs fail fast, before any instance is
// constructed.
func (d FieldDecl) check() Issues {
	var iss Issues
	path := "/" + d.Name
	if d.Name == "" {
		return Issues{Issue{Path: "/", Code: CodeDeclaration, Message: i18n.T(CodeDeclaration, nil), Hint: "empty field name"}}
	}
	if d.Type == nil {
		return AppendIssues(iss, Issue{Path: path, Code: CodeDeclaration, Message: i18n.T(CodeDeclaration, nil), Hint: "nil field type"})
	}
	if d.Required != nil && *d.Required && d.HasDefault {
		iss = AppendIssues(iss, Issue{Path: path, Code: CodeDeclaration, Message: i18n.T(CodeDeclaration, nil), Hint: "required field must not declare a default"})
	}
	if d.HasDefault && !acceptsCandidate(d.Type, d.Default) {
		iss = AppendIssues(iss, Issue{Path: path, Code: CodeDeclaration, Message: i18n.T(CodeDeclaration, nil), Hint: "default does not conform to field type " + d.Type.Name()})
	}
	if d.Choices != nil && len(d.Choices) == 0 {
		iss = AppendIssues(iss, Issue{Path: path, Code: CodeDeclaration, Message: i18n.T(CodeDeclaration, nil), Hint: "choices must not be empty"})
	}
	for _, c := range d.Choices {
		if !acceptsCandidate(d.Type, c) {
			iss = AppendIssues(iss, Issue{Path: path, Code: CodeDeclaration, Message: i18n.T(CodeDeclaration, nil), Hint: "choice does not conform to field type " + d.Type.Name()})
			break
		}
	}
	return iss
}

// acceptsCandidate widens Type.Accepts for class-backed descriptors: a raw
// map is a legal pre-construction shape for a nested class (it is converted
// during validation), so defaults and choices may be declared as maps.
func acceptsCandidate(t Type, v any) bool {
	if t.Accepts(v) {
		return true
	}
	if _, ok := t.(classType); ok {
		_, isMap := v.(map[string]any)
		return isMap
	}
	return false
}
