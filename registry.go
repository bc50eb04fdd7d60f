package typed

import (
	"github.com/typedkit/typed/i18n"
)

// UnknownPolicy decides how supplied fields absent from the declaration are
// treated during construction.
type UnknownPolicy int

const (
	// UnknownStrict rejects undeclared supplied fields (the default).
	UnknownStrict UnknownPolicy = iota
	// UnknownStrip silently drops undeclared supplied fields.
	UnknownStrip
)

// Registry is the compiled, declaration-ordered mapping from field name to
// FieldSpec for one validated class. It is read-only after Compile and safe
// for concurrent use.
type Registry struct {
	name    string
	order   []string
	specs   map[string]FieldSpec
	unknown UnknownPolicy
}

// Option adjusts registry compilation.
type Option func(*compileConfig)

type compileConfig struct {
	strict  bool
	unknown UnknownPolicy
}

// WithStrict switches resolution to strict mode: unset required/immutable
// flags default to true instead of their normal resolution.
func WithStrict() Option { return func(c *compileConfig) { c.strict = true } }

// WithUnknownStrip makes construction drop undeclared supplied fields instead
// of rejecting them.
func WithUnknownStrip() Option { return func(c *compileConfig) { c.unknown = UnknownStrip } }

// Compile resolves the declared fields into a Registry. Declaration order is
// preserved and lookups are case-sensitive. Malformed declarations surface as
// declaration_error issues here, at class-definition time, never during
// instance construction.
func Compile(name string, decls []FieldDecl, opts ...Option) (*Registry, error) {
	cfg := compileConfig{unknown: UnknownStrict}
	for _, o := range opts {
		o(&cfg)
	}

	r := &Registry{
		name:    name,
		order:   make([]string, 0, len(decls)),
		specs:   make(map[string]FieldSpec, len(decls)),
		unknown: cfg.unknown,
	}
	var iss Issues
	for _, d := range decls {
		if _, dup := r.specs[d.Name]; dup {
			iss = AppendIssues(iss, Issue{Path: "/" + d.Name, Code: CodeDeclaration, Message: i18n.T(CodeDeclaration, nil), Hint: "duplicate field name"})
			continue
		}
		if di := d.check(); len(di) > 0 {
			iss = AppendIssues(iss, di...)
			continue
		}
		r.order = append(r.order, d.Name)
		r.specs[d.Name] = d.resolve(cfg.strict)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return r, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(name string, decls []FieldDecl, opts ...Option) *Registry {
	r, err := Compile(name, decls, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the class name the registry was compiled for.
func (r *Registry) Name() string { return r.name }

// Fields returns the field names in declaration order.
func (r *Registry) Fields() []string {
	return append([]string(nil), r.order...)
}

// Spec returns the resolved FieldSpec for the given field name.
func (r *Registry) Spec(name string) (FieldSpec, bool) {
	s, ok := r.specs[name]
	return s, ok
}
