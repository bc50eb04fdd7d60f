package typed_test

import (
	"context"
	"encoding/json"
	"testing"

	typed "github.com/typedkit/typed"
	"github.com/typedkit/typed/dsl"
)

const exampleMessageJSON = `{"_id":1,"sender":"nic","kind":"message",` +
	`"nested_obj":{"name":"nested_obj","value":"cool","valid":true},` +
	`"nested_obj_with_help":{"name":"nested_obj_with_help","value":"very cool","valid":true}}`

func TestJSON_RoundTripPreservesDeclarationOrder(t *testing.T) {
	_, msg := messageClasses(t)
	ctx := context.Background()

	inst, err := msg.FromJSON(ctx, []byte(exampleMessageJSON))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	out, err := inst.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if string(out) != exampleMessageJSON {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", exampleMessageJSON, out)
	}
}

func TestFromJSON_NumbersArriveAsJSONNumber(t *testing.T) {
	reg := dsl.Class("Nums").
		Field("count", typed.Int()).Required().
		MustBuild()

	inst, err := reg.FromJSON(context.Background(), []byte(`{"count":42}`))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	v, _ := inst.Get("count")
	if n, ok := v.(json.Number); !ok || string(n) != "42" {
		t.Fatalf("expected json.Number(\"42\"), got %T %v", v, v)
	}
}

func TestFromJSON_MalformedInput(t *testing.T) {
	reg := dsl.Class("Nums").
		Field("count", typed.Int()).Required().
		MustBuild()

	_, err := reg.FromJSON(context.Background(), []byte(`{"count":`))
	it := firstIssue(t, err)
	if it.Code != typed.CodeParseError {
		t.Fatalf("expected parse_error, got %s", it.Code)
	}
}

func TestFromJSON_ValidationStillApplies(t *testing.T) {
	reg := allOptionsClass(t)

	// choices and validator run on the json.Number form as well
	if _, err := reg.FromJSON(context.Background(), []byte(`{"all_options":23}`)); err != nil {
		t.Fatalf("23 should pass: %v", err)
	}
	_, err := reg.FromJSON(context.Background(), []byte(`{"all_options":5}`))
	it := firstIssue(t, err)
	if it.Code != typed.CodeInvalidChoice {
		t.Fatalf("expected invalid_choice, got %s", it.Code)
	}
}

func TestJSON_OmitsUnsetFields(t *testing.T) {
	reg := dsl.Class("Sparse").
		Field("a", typed.Int()).Required().
		Field("b", typed.Int()).Optional().
		MustBuild()

	inst, err := reg.FromJSON(context.Background(), []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	out, err := inst.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if string(out) != `{"a":1}` {
		t.Fatalf("unexpected output %s", out)
	}
}
