package typed

// Package typed provides:
//
// - Declarative attribute validation for map-shaped objects (type, required,
//   immutable, choices, validator predicate, default) compiled once per class
//   into a Registry
// - A stable error model via Issues (JSON Pointer, code, message)
// - Instances whose every mutation re-runs the per-field checks, so
//   immutability and type invariants hold for the whole object lifetime
// - Plain-data, JSON, and YAML bridges with nested validated classes and
//   round-trip fidelity
//
// Design policy:
// - Keep only public APIs in the root package.
// - Place the class declaration DSL under dsl/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	reg := dsl.Class("Message").
//		Field("sender", typed.String()).Required().
//		Field("kind", typed.String()).Default("message").
//		MustBuild()
//
//	msg, err := reg.FromJSON(ctx, data)
//	out := msg.Plain()
