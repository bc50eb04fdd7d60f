package dsl

import (
	typed "github.com/typedkit/typed"
	"github.com/typedkit/typed/i18n"
)

// ClassBuilder accumulates field declarations for one validated class. A bare
// annotation is Field(name, type) with no chained calls; chained calls form
// the explicit spec. Build compiles the declarations into a typed.Registry,
// failing fast on malformed specs.
type ClassBuilder struct {
	name         string
	decls        []typed.FieldDecl
	index        map[string]int
	strict       bool
	unknownStrip bool
	issues       typed.Issues
}

// FieldStep scopes chained spec calls to the field most recently declared.
type FieldStep struct {
	b   *ClassBuilder
	idx int
}

// Class creates a new builder with safe defaults (unknown fields rejected,
// normal resolution).
func Class(name string) *ClassBuilder {
	return &ClassBuilder{name: name, index: map[string]int{}}
}

// Field declares an attribute with its type descriptor.
func (b *ClassBuilder) Field(name string, t typed.Type) *FieldStep {
	if _, dup := b.index[name]; !dup {
		b.index[name] = len(b.decls)
	}
	// duplicates are appended anyway; Compile reports them as declaration errors
	b.decls = append(b.decls, typed.FieldDecl{Name: name, Type: t})
	return &FieldStep{b: b, idx: len(b.decls) - 1}
}

func (f *FieldStep) decl() *typed.FieldDecl { return &f.b.decls[f.idx] }

// Required marks the field as required.
func (f *FieldStep) Required() *FieldStep {
	f.decl().Required = boolPtr(true)
	return f
}

// Optional marks the field as explicitly not required, overriding strict mode.
func (f *FieldStep) Optional() *FieldStep {
	f.decl().Required = boolPtr(false)
	return f
}

// Immutable forbids reassignment once the field holds a value.
func (f *FieldStep) Immutable() *FieldStep {
	f.decl().Immutable = boolPtr(true)
	return f
}

// Mutable marks the field as explicitly reassignable, overriding strict mode.
func (f *FieldStep) Mutable() *FieldStep {
	f.decl().Immutable = boolPtr(false)
	return f
}

// Choices restricts the field to the given values. The stored slice is never
// nil so an empty call still reaches the declaration check in Compile.
func (f *FieldStep) Choices(values ...any) *FieldStep {
	f.decl().Choices = append(make([]any, 0, len(values)), values...)
	return f
}

// Validate attaches a predicate run after the type and choice checks.
func (f *FieldStep) Validate(fn func(v any) bool) *FieldStep {
	f.decl().Validate = fn
	return f
}

// Default sets the value used when the field is omitted. A field with a
// default resolves to optional unless Required was called explicitly, which
// Compile rejects as a declaration error.
func (f *FieldStep) Default(v any) *FieldStep {
	d := f.decl()
	d.Default = v
	d.HasDefault = true
	return f
}

// Chaining escapes back to the builder so declarations read top to bottom.
func (f *FieldStep) Field(name string, t typed.Type) *FieldStep { return f.b.Field(name, t) }
func (f *FieldStep) Strict() *ClassBuilder                      { return f.b.Strict() }
func (f *FieldStep) UnknownStrip() *ClassBuilder                { return f.b.UnknownStrip() }
func (f *FieldStep) Require(names ...string) *ClassBuilder      { return f.b.Require(names...) }
func (f *FieldStep) Build() (*typed.Registry, error)            { return f.b.Build() }
func (f *FieldStep) MustBuild() *typed.Registry                 { return f.b.MustBuild() }

// Strict switches resolution to strict mode: fields that do not explicitly
// override default to required and immutable.
func (b *ClassBuilder) Strict() *ClassBuilder {
	b.strict = true
	return b
}

// UnknownStrip makes construction drop undeclared supplied fields instead of
// rejecting them.
func (b *ClassBuilder) UnknownStrip() *ClassBuilder {
	b.unknownStrip = true
	return b
}

// Require marks one or more previously declared fields as required.
func (b *ClassBuilder) Require(names ...string) *ClassBuilder {
	for _, n := range names {
		i, ok := b.index[n]
		if !ok {
			b.issues = typed.AppendIssues(b.issues, typed.Issue{
				Path: "/" + n, Code: typed.CodeDeclaration,
				Message: i18n.T(typed.CodeDeclaration, nil),
				Hint:    "Require names an undeclared field",
			})
			continue
		}
		b.decls[i].Required = boolPtr(true)
	}
	return b
}

// Build compiles the declarations into a Registry.
func (b *ClassBuilder) Build() (*typed.Registry, error) {
	if len(b.issues) > 0 {
		return nil, b.issues
	}
	var opts []typed.Option
	if b.strict {
		opts = append(opts, typed.WithStrict())
	}
	if b.unknownStrip {
		opts = append(opts, typed.WithUnknownStrip())
	}
	return typed.Compile(b.name, b.decls, opts...)
}

// MustBuild is like Build but panics on error.
func (b *ClassBuilder) MustBuild() *typed.Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

func boolPtr(v bool) *bool { return &v }
