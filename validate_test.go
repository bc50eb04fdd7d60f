package typed_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	typed "github.com/typedkit/typed"
	"github.com/typedkit/typed/dsl"
)

func firstIssue(t *testing.T, err error) typed.Issue {
	t.Helper()
	iss, ok := typed.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	return iss[0]
}

func intAbove20(v any) bool {
	switch n := v.(type) {
	case int:
		return n > 20
	case json.Number:
		f, err := n.Float64()
		return err == nil && f > 20
	default:
		return false
	}
}

func allOptionsClass(t *testing.T) *typed.Registry {
	t.Helper()
	return dsl.Class("Example").
		Field("all_options", typed.Int()).
		Required().Immutable().
		Choices(21, 22, 23).
		Validate(intAbove20).
		MustBuild()
}

func TestNew_MissingRequiredField(t *testing.T) {
	reg := dsl.Class("User").
		Field("name", typed.String()).Required().
		MustBuild()

	_, err := reg.New(context.Background(), map[string]any{})
	it := firstIssue(t, err)
	if it.Code != typed.CodeRequired || it.Path != "/name" {
		t.Fatalf("expected required at /name, got %s at %s", it.Code, it.Path)
	}
}

func TestNew_BareFieldWithoutDefaultIsRequired(t *testing.T) {
	reg := dsl.Class("User").
		Field("name", typed.String()).
		MustBuild()

	if _, err := reg.New(context.Background(), map[string]any{}); err == nil {
		t.Fatalf("expected required error for bare field without default")
	}
}

func TestNew_TypeMismatch(t *testing.T) {
	reg := dsl.Class("User").
		Field("age", typed.Int()).Required().
		MustBuild()

	_, err := reg.New(context.Background(), map[string]any{"age": "forty"})
	it := firstIssue(t, err)
	if it.Code != typed.CodeInvalidType || it.Path != "/age" {
		t.Fatalf("expected invalid_type at /age, got %s at %s", it.Code, it.Path)
	}
	if !strings.Contains(it.Hint, "expected int") {
		t.Fatalf("expected hint to name the declared type, got %q", it.Hint)
	}
}

func TestNew_TypeCheckedBeforeChoices(t *testing.T) {
	reg := allOptionsClass(t)

	_, err := reg.New(context.Background(), map[string]any{"all_options": "21"})
	it := firstIssue(t, err)
	if it.Code != typed.CodeInvalidType {
		t.Fatalf("expected invalid_type before invalid_choice, got %s", it.Code)
	}
}

func TestNew_ChoiceCheckedBeforeValidator(t *testing.T) {
	reg := allOptionsClass(t)

	// 5 fails both the choices and the predicate; the choice check runs first.
	_, err := reg.New(context.Background(), map[string]any{"all_options": 5})
	it := firstIssue(t, err)
	if it.Code != typed.CodeInvalidChoice {
		t.Fatalf("expected invalid_choice, got %s", it.Code)
	}

	if _, err := reg.New(context.Background(), map[string]any{"all_options": 23}); err != nil {
		t.Fatalf("expected 23 to pass choices and validator, got %v", err)
	}
}

func TestNew_ValidatorRejects(t *testing.T) {
	reg := dsl.Class("Example").
		Field("n", typed.Int()).Required().
		Validate(intAbove20).
		MustBuild()

	_, err := reg.New(context.Background(), map[string]any{"n": 5})
	it := firstIssue(t, err)
	if it.Code != typed.CodeValidateFailed || it.Path != "/n" {
		t.Fatalf("expected validate_failed at /n, got %s at %s", it.Code, it.Path)
	}
}

func TestNew_ValidatorPanicNormalized(t *testing.T) {
	reg := dsl.Class("Example").
		Field("n", typed.Int()).Required().
		Validate(func(v any) bool { panic("boom") }).
		MustBuild()

	_, err := reg.New(context.Background(), map[string]any{"n": 1})
	it := firstIssue(t, err)
	if it.Code != typed.CodeValidateFailed {
		t.Fatalf("expected panic to normalize to validate_failed, got %s", it.Code)
	}
}

func TestNew_UnknownFieldRejected(t *testing.T) {
	reg := dsl.Class("User").
		Field("name", typed.String()).Required().
		MustBuild()

	inst, err := reg.New(context.Background(), map[string]any{"name": "nic", "nmae": "typo"})
	it := firstIssue(t, err)
	if it.Code != typed.CodeUnknownKey || it.Path != "/nmae" {
		t.Fatalf("expected unknown_key at /nmae, got %s at %s", it.Code, it.Path)
	}
	if inst != nil {
		t.Fatalf("expected no instance on unknown field, got %v", inst)
	}
}

func TestNew_UnknownStripDropsExtras(t *testing.T) {
	reg := dsl.Class("User").
		Field("name", typed.String()).Required().
		UnknownStrip().
		MustBuild()

	inst, err := reg.New(context.Background(), map[string]any{"name": "nic", "extra": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Has("extra") {
		t.Fatalf("stripped field must not be retained")
	}
}

func TestNew_DefaultApplied(t *testing.T) {
	reg := dsl.Class("User").
		Field("kind", typed.String()).Default("message").
		MustBuild()

	inst, err := reg.New(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := inst.Get("kind")
	if !ok || v != "message" {
		t.Fatalf("expected default applied, got %v (set=%v)", v, ok)
	}
	if inst.Presence("kind")&typed.PresenceDefaultApplied == 0 {
		t.Fatalf("expected PresenceDefaultApplied bit")
	}
}

func TestNew_OptionalFieldLeftUnset(t *testing.T) {
	reg := dsl.Class("User").
		Field("nickname", typed.String()).Optional().
		MustBuild()

	inst, err := reg.New(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Has("nickname") {
		t.Fatalf("optional omitted field must stay unset")
	}
	if _, ok := inst.Get("nickname"); ok {
		t.Fatalf("Get on unset field must report ok=false")
	}
}

func TestNew_UnionAndCollectionTypes(t *testing.T) {
	reg := dsl.Class("Mixed").
		Field("id", typed.OneOf(typed.Int(), typed.String())).Required().
		Field("tags", typed.SliceOf(typed.String())).Required().
		Field("meta", typed.MapOf(typed.Any())).Optional().
		MustBuild()

	ctx := context.Background()
	if _, err := reg.New(ctx, map[string]any{"id": "abc", "tags": []any{"a", "b"}}); err != nil {
		t.Fatalf("string id should satisfy the union: %v", err)
	}
	if _, err := reg.New(ctx, map[string]any{"id": 7, "tags": []any{"a", "b"}}); err != nil {
		t.Fatalf("int id should satisfy the union: %v", err)
	}
	if _, err := reg.New(ctx, map[string]any{"id": true, "tags": []any{}}); err == nil {
		t.Fatalf("bool id should fail the union")
	}
	_, err := reg.New(ctx, map[string]any{"id": 7, "tags": []any{"a", 1}})
	it := firstIssue(t, err)
	if it.Code != typed.CodeInvalidType || it.Path != "/tags" {
		t.Fatalf("expected invalid_type at /tags, got %s at %s", it.Code, it.Path)
	}
}

func TestNew_JSONNumberAcceptedByIntAndFloat(t *testing.T) {
	reg := dsl.Class("Nums").
		Field("count", typed.Int()).Required().
		Field("ratio", typed.Float()).Required().
		MustBuild()

	supplied := map[string]any{"count": json.Number("42"), "ratio": json.Number("1.01")}
	if _, err := reg.New(context.Background(), supplied); err != nil {
		t.Fatalf("json.Number should satisfy numeric types: %v", err)
	}

	if _, err := reg.New(context.Background(), map[string]any{"count": json.Number("1.5"), "ratio": json.Number("1.0")}); err == nil {
		t.Fatalf("fractional json.Number must not satisfy Int")
	}
}

func TestNew_NestedClassValidation(t *testing.T) {
	nested := dsl.Class("NestedObj").
		Field("name", typed.String()).Required().
		Field("valid", typed.Bool()).Required().
		MustBuild()
	outer := dsl.Class("Message").
		Field("nested_obj", typed.Object(nested)).Required().
		MustBuild()

	ctx := context.Background()

	// nested rules enforced through the outer construction
	_, err := outer.New(ctx, map[string]any{"nested_obj": map[string]any{"name": "x"}})
	it := firstIssue(t, err)
	if it.Code != typed.CodeRequired || it.Path != "/nested_obj/valid" {
		t.Fatalf("expected required at /nested_obj/valid, got %s at %s", it.Code, it.Path)
	}

	// a pre-constructed instance of the right class passes directly
	child, err := nested.New(ctx, map[string]any{"name": "x", "valid": true})
	if err != nil {
		t.Fatalf("nested construction failed: %v", err)
	}
	if _, err := outer.New(ctx, map[string]any{"nested_obj": child}); err != nil {
		t.Fatalf("instance value should pass the object type: %v", err)
	}

	// a non-map, non-instance value is a type mismatch with the class name
	_, err = outer.New(ctx, map[string]any{"nested_obj": 42})
	it = firstIssue(t, err)
	if it.Code != typed.CodeInvalidType || !strings.Contains(it.Hint, "NestedObj") {
		t.Fatalf("expected invalid_type naming NestedObj, got %s hint=%q", it.Code, it.Hint)
	}
}
