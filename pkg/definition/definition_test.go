package definition_test

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func TestParseYAMLDefinition(t *testing.T) {
	def, err := definition.Parse(mustRead(t, "testdata/forms/send_money.yaml"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.Title != "Send money" {
		t.Fatalf("title = %q", def.Title)
	}
	field, ok := def.Lookup("amount")
	if !ok || field.Label != "Amount" {
		t.Fatalf("amount field = %+v (found=%v)", field, ok)
	}

	schema, err := def.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	c := form.New(def.Initial(), schema, nil)
	if ok, _ := c.HandleSubmit(); ok {
		t.Fatalf("empty form must not submit")
	}
	want := map[string]string{
		"recipient": "Recipient is required",
		"amount":    "Amount is required",
		"note":      "",
	}
	if diff := cmp.Diff(want, c.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	_ = c.HandleChange("recipient", "emily.davis@example")
	_ = c.HandleChange("amount", "20000")
	_ = c.HandleChange("note", "<i>hi</i>")
	want = map[string]string{
		"recipient": "Invalid email address",
		"amount":    "Maximum amount is 10000",
		"note":      "Note cannot contain HTML",
	}
	if diff := cmp.Diff(want, c.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONDefinitionWithCrossFieldRule(t *testing.T) {
	def, err := definition.Parse(mustRead(t, "testdata/forms/register.json"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantInitial := form.Values{
		"fullName":        "",
		"password":        "",
		"confirmPassword": "",
		"country":         "US",
		"terms":           false,
	}
	if diff := cmp.Diff(wantInitial, def.Initial()); diff != "" {
		t.Fatalf("initial mismatch (-want +got):\n%s", diff)
	}

	schema, err := def.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var submitted form.Values
	c := form.New(def.Initial(), schema, func(v form.Values) error {
		submitted = v
		return nil
	})
	for name, value := range map[string]any{
		"fullName":        "Jane Doe",
		"password":        "secret1",
		"confirmPassword": "secret2",
		"terms":           true,
	} {
		if err := c.HandleChange(name, value); err != nil {
			t.Fatalf("change %s: %v", name, err)
		}
	}
	if ok, _ := c.HandleSubmit(); ok {
		t.Fatalf("mismatched passwords must not submit")
	}
	if got := c.Error("confirmPassword"); got != "Passwords do not match" {
		t.Fatalf("confirm error = %q", got)
	}

	_ = c.HandleChange("confirmPassword", "secret1")
	if ok, _ := c.HandleSubmit(); !ok {
		t.Fatalf("expected submit, errors: %v", c.Errors())
	}
	if submitted["terms"] != true || submitted["country"] != "US" {
		t.Fatalf("unexpected submitted values: %v", submitted)
	}
}

func TestParseRejectsBadDefinitions(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "  ", definition.ErrEmptyDocument},
		{"invalid", "fields: [", definition.ErrInvalidDocument},
		{"no fields", `{"id":"x"}`, definition.ErrNoFields},
		{"unknown type", `{"id":"x","fields":[{"name":"a","type":"color"}]}`, definition.ErrUnknownFieldType},
		{"unknown rule", `{"id":"x","fields":[{"name":"a","rules":[{"kind":"telepathy"}]}]}`, definition.ErrUnknownRule},
		{"bad length", `{"id":"x","fields":[{"name":"a","rules":[{"kind":"minLength","value":"many"}]}]}`, definition.ErrInvalidRule},
		{"duplicate", `{"id":"x","fields":[{"name":"a"},{"name":"a"}]}`, form.ErrDuplicateField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := definition.Parse([]byte(tc.doc)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFromOpenAPI(t *testing.T) {
	def, err := definition.FromOpenAPI(context.Background(), mustRead(t, "testdata/openapi/wallet_api.yaml"), "requestMoney")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if def.Title != "Request money" {
		t.Fatalf("title = %q", def.Title)
	}

	var names []string
	types := map[string]definition.FieldType{}
	for _, field := range def.Fields {
		names = append(names, field.Name)
		types[field.Name] = field.Type
	}
	if diff := cmp.Diff([]string{"amount", "dueDate", "note", "recipient", "reminder"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	wantTypes := map[string]definition.FieldType{
		"amount":    definition.FieldNumber,
		"dueDate":   definition.FieldSelect,
		"note":      definition.FieldText,
		"recipient": definition.FieldEmail,
		"reminder":  definition.FieldCheckbox,
	}
	if diff := cmp.Diff(wantTypes, types); diff != "" {
		t.Fatalf("field types mismatch (-want +got):\n%s", diff)
	}

	schema, err := def.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	c := form.New(def.Initial(), schema, nil)
	_ = c.HandleChange("dueDate", "never")
	_ = c.HandleChange("amount", "12000")
	c.HandleSubmit()

	want := map[string]string{
		"amount":    "Amount must be at most 10000",
		"dueDate":   "Choose one of the listed options",
		"note":      "",
		"recipient": "Recipient is required",
		"reminder":  "",
	}
	if diff := cmp.Diff(want, c.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPIUnknownOperation(t *testing.T) {
	_, err := definition.FromOpenAPI(context.Background(), mustRead(t, "testdata/openapi/wallet_api.yaml"), "deleteEverything")
	if !errors.Is(err, definition.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	defs, err := definition.LoadFS(os.DirFS("testdata/forms"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	var ids []string
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if diff := cmp.Diff([]string{"register", "sendMoney"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if got := defs["register"].Title; got != "Register" {
		t.Fatalf("register title = %q", got)
	}
}

func TestLoadFSRejectsNonDefinitions(t *testing.T) {
	if _, err := definition.LoadFS(os.DirFS("testdata/openapi")); !errors.Is(err, definition.ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"fullName":         "Full name",
		"confirm_password": "Confirm password",
		"dueDate":          "Due date",
		"address2":         "Address 2",
		"":                 "",
	}
	for in, want := range cases {
		if got := definition.Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromOpenAPIGolden(t *testing.T) {
	def, err := definition.FromOpenAPI(context.Background(), mustRead(t, "testdata/openapi/wallet_api.yaml"), "requestMoney")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	const golden = "testdata/golden/request_money.json"
	if testsupport.WriteMaybeGolden(t, golden, def) {
		return
	}
	want := testsupport.MustLoadJSON[definition.Definition](t, golden)
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestVisibleWhenSkipsHiddenFields(t *testing.T) {
	def, err := definition.Parse([]byte(`
id: requestMoney
fields:
  - name: dueDate
    type: select
    options:
      - value: immediate
      - value: custom
  - name: customDate
    type: date
    required: true
    visibleWhen: dueDate == custom
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	schema, err := def.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	c := form.New(form.Values{"dueDate": "immediate", "customDate": ""}, schema, nil)
	if ok, _ := c.HandleSubmit(); !ok {
		t.Fatalf("hidden required field must not block submit: %v", c.Errors())
	}

	_ = c.HandleChange("dueDate", "custom")
	if ok, _ := c.HandleSubmit(); ok {
		t.Fatalf("visible required field must block submit")
	}
	if got := c.Error("customDate"); got != "Custom date is required" {
		t.Fatalf("customDate error = %q", got)
	}
}

func TestVisibleWhenRejectsBadReferences(t *testing.T) {
	cases := map[string]string{
		"unknown field": "missing == x",
		"self":          "note",
		"syntax":        "== x",
	}
	for name, rule := range cases {
		t.Run(name, func(t *testing.T) {
			def := definition.Definition{
				ID:     "x",
				Fields: []definition.Field{{Name: "note", Label: "Note", Type: definition.FieldText, VisibleWhen: rule}},
			}
			if _, err := def.Schema(); err == nil {
				t.Fatalf("expected error for %q", rule)
			}
		})
	}
}

func TestFromOpenAPINumericBounds(t *testing.T) {
	def, err := definition.FromOpenAPI(context.Background(), mustRead(t, "testdata/openapi/bounds_api.yaml"), "createProfile")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	schema, err := def.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	cases := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"optional max blank", "tip", "", ""},
		{"optional max above", "tip", "101", "Tip must be at most 100"},
		{"optional max at bound", "tip", "100", ""},
		{"min only blank", "age", "", ""},
		{"min only below", "age", "3", "Age must be at least 18"},
		{"min only at bound", "age", "18", ""},
		{"pair blank", "rating", "", ""},
		{"pair below", "rating", "0", "Rating must be at least 1"},
		{"pair above", "rating", "6", "Rating must be at most 5"},
		{"pair inside", "rating", "3", ""},
		{"exclusive min at bound", "fee", "0", "Fee must be greater than 0"},
		{"exclusive min above", "fee", "0.5", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := form.New(def.Initial(), schema, nil)
			if err := c.HandleChange("name", "bob"); err != nil {
				t.Fatalf("change name: %v", err)
			}
			if err := c.HandleChange(tc.field, tc.value); err != nil {
				t.Fatalf("change %s: %v", tc.field, err)
			}
			valid := c.ValidateForm()
			if got := c.Error(tc.field); got != tc.want {
				t.Fatalf("%s error = %q, want %q", tc.field, got, tc.want)
			}
			if valid != (tc.want == "") {
				t.Fatalf("valid = %v with errors %v", valid, c.Errors())
			}
		})
	}
}

func TestMatchesRejectsBadReferences(t *testing.T) {
	cases := map[string]string{
		"unknown field": "pasword",
		"self":          "confirm",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			def := definition.Definition{
				ID: "register",
				Fields: []definition.Field{
					{Name: "password", Label: "Password", Type: definition.FieldPassword},
					{Name: "confirm", Label: "Confirm", Type: definition.FieldPassword, Rules: []definition.Rule{{Kind: "matches", Value: target}}},
				},
			}
			if _, err := def.Schema(); !errors.Is(err, definition.ErrInvalidRule) {
				t.Fatalf("expected ErrInvalidRule for %q, got %v", target, err)
			}
		})
	}
}
