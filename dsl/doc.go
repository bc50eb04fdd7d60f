// Package dsl provides the class declaration builder for typed.
//
// Declarations read like the annotated class they stand in for:
//
//	reg := dsl.Class("Example").
//		Field("simple_type_hint", typed.Int()).
//		Field("all_options", typed.Int()).
//			Required().Immutable().
//			Choices(21, 22, 23).
//			Validate(func(v any) bool { n, _ := v.(int); return n > 20 }).
//		Strict().
//		MustBuild()
//
// A bare Field call is the equivalent of a plain type annotation; chained
// calls form an explicit per-field spec. Build fails fast at class-definition
// time when a declaration is malformed.
package dsl
