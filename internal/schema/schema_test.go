package schema

import (
	"encoding/json"
	"testing"
	"time"

	kit "scorebox/internal/platform/testkit"
)

var anchor = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestParseRequiredAbsent(t *testing.T) {
	s := New(
		Field{Name: "login", Kind: String, Required: true},
		Field{Name: "account", Kind: String},
	)
	p := s.Parse(map[string]any{}, anchor)
	if p.Valid() {
		t.Fatalf("expected invalid parse")
	}
	if got := p.Errors()["login"]; got != "login is required" {
		t.Fatalf("login error = %q", got)
	}
	if _, ok := p.Errors()["account"]; ok {
		t.Fatalf("optional absent field must not error")
	}
}

func TestParseNullHandling(t *testing.T) {
	s := New(
		Field{Name: "login", Kind: String, Required: true},
	)
	// explicit JSON null behaves like an absent value
	p := s.Parse(map[string]any{"login": nil}, anchor)
	if got := p.Errors()["login"]; got != "login is required" {
		t.Fatalf("null required error = %q", got)
	}
}

func TestParseEmptyNonNullable(t *testing.T) {
	s := New(
		Field{Name: "method", Kind: String, Required: true},
		Field{Name: "token", Kind: String, Required: true, Nullable: true},
	)
	p := s.Parse(map[string]any{"method": "", "token": ""}, anchor)
	if got := p.Errors()["method"]; got != "method cannot be empty" {
		t.Fatalf("method error = %q", got)
	}
	if _, ok := p.Errors()["token"]; ok {
		t.Fatalf("nullable field must accept the empty string")
	}
	if p.String("token") != "" {
		t.Fatalf("empty token should clean to empty string")
	}
}

func TestParseEmptyKinds(t *testing.T) {
	s := New(
		Field{Name: "args", Kind: Object, Required: true},
		Field{Name: "ids", Kind: ClientIDList, Required: true},
		Field{Name: "gender", Kind: Gender, Required: true},
	)
	p := s.Parse(map[string]any{
		"args":   map[string]any{},
		"ids":    []any{},
		"gender": json.Number("0"),
	}, anchor)
	for _, name := range []string{"args", "ids", "gender"} {
		if got := p.Errors()[name]; got != name+" cannot be empty" {
			t.Fatalf("%s error = %q", name, got)
		}
	}
}

func TestParseCollectsAcrossFields(t *testing.T) {
	s := New(
		Field{Name: "login", Kind: String, Required: true},
		Field{Name: "phone", Kind: Phone, Nullable: true},
		Field{Name: "email", Kind: Email, Nullable: true},
	)
	p := s.Parse(map[string]any{
		"phone": "123",
		"email": "not-an-email",
	}, anchor)
	if len(p.Errors()) != 3 {
		t.Fatalf("expected 3 independent errors, got %v", p.Errors())
	}
}

func TestParseFailFastWithinField(t *testing.T) {
	s := New(Field{Name: "phone", Kind: Phone, Required: true})
	// absence wins over everything else; no cleaning message appears
	p := s.Parse(map[string]any{}, anchor)
	if got := p.Errors()["phone"]; got != "phone is required" {
		t.Fatalf("phone error = %q", got)
	}
}

func TestRuleRunsOnlyWhenFieldsPass(t *testing.T) {
	calls := 0
	s := New(
		Field{Name: "a", Kind: String, Nullable: true},
		Field{Name: "b", Kind: String, Required: true},
	).WithRule(func(p *Parsed) string {
		calls++
		return "never together"
	})

	p := s.Parse(map[string]any{}, anchor)
	if calls != 0 {
		t.Fatalf("rule must not run when a field fails")
	}
	if _, ok := p.Errors()[RuleErrorKey]; ok {
		t.Fatalf("rule error must not appear alongside field errors")
	}

	p = s.Parse(map[string]any{"a": "x", "b": "y"}, anchor)
	if calls != 1 {
		t.Fatalf("rule should run once, ran %d times", calls)
	}
	if got := p.Errors()[RuleErrorKey]; got != "never together" {
		t.Fatalf("rule error = %q", got)
	}
}

func TestExtendOverridesInPlace(t *testing.T) {
	base := New(
		Field{Name: "first", Kind: String},
		Field{Name: "second", Kind: String},
	)
	derived := base.Extend(
		Field{Name: "first", Kind: String, Required: true},
		Field{Name: "third", Kind: String},
	)

	fields := derived.Fields()
	if len(fields) != 3 {
		t.Fatalf("derived field count = %d", len(fields))
	}
	if fields[0].Name != "first" || !fields[0].Required {
		t.Fatalf("override must keep position and apply new settings")
	}
	if fields[2].Name != "third" {
		t.Fatalf("new fields must append after the base")
	}

	// the base is untouched
	if base.Fields()[0].Required {
		t.Fatalf("Extend mutated the receiver")
	}
}

func TestNewPanicsOnDuplicate(t *testing.T) {
	kit.MustPanic(t, func() {
		New(
			Field{Name: "x", Kind: String},
			Field{Name: "x", Kind: Phone},
		)
	})
}

func TestPresentAndPresentFields(t *testing.T) {
	s := New(
		Field{Name: "first_name", Kind: String, Nullable: true},
		Field{Name: "gender", Kind: Gender, Nullable: true},
		Field{Name: "last_name", Kind: String, Nullable: true},
	)
	p := s.Parse(map[string]any{
		"first_name": "",
		"gender":     json.Number("0"),
		"last_name":  "Doe",
	}, anchor)
	if !p.Valid() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if p.Present("first_name") {
		t.Fatalf("empty string must not be present")
	}
	if !p.Present("gender") {
		t.Fatalf("zero gender is a real value and must be present")
	}
	got := p.PresentFields()
	if len(got) != 2 || got[0] != "gender" || got[1] != "last_name" {
		t.Fatalf("PresentFields = %v, want declaration order [gender last_name]", got)
	}
}

func TestTypedAccessors(t *testing.T) {
	s := New(
		Field{Name: "birthday", Kind: Birthday, Nullable: true},
		Field{Name: "gender", Kind: Gender, Nullable: true},
		Field{Name: "client_ids", Kind: ClientIDList, Required: true},
		Field{Name: "arguments", Kind: Object, Required: true, Nullable: true},
	)
	p := s.Parse(map[string]any{
		"birthday":   "01.01.1990",
		"gender":     json.Number("1"),
		"client_ids": []any{json.Number("1"), json.Number("2")},
		"arguments":  map[string]any{"k": "v"},
	}, anchor)
	if !p.Valid() {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}

	bd, ok := p.Time("birthday")
	if !ok || bd.Year() != 1990 || bd.Month() != time.January || bd.Day() != 1 {
		t.Fatalf("Time(birthday) = %v, %v", bd, ok)
	}
	g, ok := p.Int("gender")
	if !ok || g != 1 {
		t.Fatalf("Int(gender) = %d, %v", g, ok)
	}
	ids := p.Ints("client_ids")
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("Ints(client_ids) = %v", ids)
	}
	if p.Object("arguments")["k"] != "v" {
		t.Fatalf("Object(arguments) lost data")
	}

	// absent accessors return zero values with ok=false
	if _, ok := p.Time("missing"); ok {
		t.Fatalf("Time on missing field must report absent")
	}
	if p.Ints("missing") != nil {
		t.Fatalf("Ints on missing field must be nil")
	}
}
