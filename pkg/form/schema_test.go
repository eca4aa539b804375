package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
)

func TestNewSchema_RejectsInvalidDeclarations(t *testing.T) {
	get := func(p pair) string { return p.A }
	set := func(p *pair, v string) { p.A = v }

	cases := []struct {
		name   string
		fields []form.Field[pair]
		want   error
	}{
		{
			name:   "empty name",
			fields: []form.Field[pair]{form.Bind("", get, set, form.Optional[string])},
			want:   form.ErrFieldName,
		},
		{
			name: "duplicate",
			fields: []form.Field[pair]{
				form.Bind("a", get, set, form.Optional[string]),
				form.Bind("a", get, set, form.Optional[string]),
			},
			want: form.ErrDuplicateField,
		},
		{
			name:   "missing validator",
			fields: []form.Field[pair]{form.Bind[pair, string]("a", get, set, nil)},
			want:   form.ErrMissingValidator,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := form.NewSchema(tc.fields...); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSchema_TransitionsDoNotAlias(t *testing.T) {
	start := pairSchema.Init(pair{})
	blurred := pairSchema.Blur(start, fieldA)

	if len(start.Errors) != 0 || len(start.Touched) != 0 {
		t.Fatalf("blur mutated the input state: %+v", start)
	}
	if !blurred.Touched["a"] {
		t.Fatalf("expected a touched in output state")
	}

	changed := form.ChangeState(pairSchema, blurred, fieldA, "x")
	if blurred.Values.A != "" || blurred.Errors["a"] == "" {
		t.Fatalf("change mutated the input state: %+v", blurred)
	}
	if changed.Errors["a"] != "" {
		t.Fatalf("expected a revalidated, got %q", changed.Errors["a"])
	}
}

func TestSchema_ForeignFieldPanics(t *testing.T) {
	other := form.Bind("c",
		func(p pair) string { return p.A },
		func(p *pair, v string) { p.A = v },
		form.Optional[string],
	)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for field outside the schema")
		}
	}()
	pairSchema.Blur(pairSchema.Init(pair{}), other)
}

type signup struct {
	Password string
	Confirm  string
}

func TestBindCross_SeesWholeRecord(t *testing.T) {
	password := form.Bind("password",
		func(s signup) string { return s.Password },
		func(s *signup, v string) { s.Password = v },
		form.Optional[string],
	)
	confirm := form.BindCross("confirm",
		func(s signup) string { return s.Confirm },
		func(s *signup, v string) { s.Confirm = v },
		func(s signup, v string) string {
			if v != s.Password {
				return "Passwords do not match"
			}
			return ""
		},
	)
	schema := form.MustSchema[signup](password, confirm)

	c := form.New(signup{}, schema, nil)
	form.Change(c, password, "secret1")
	form.Change(c, confirm, "secret2")
	c.HandleBlur(confirm)
	if got := c.Error("confirm"); got != "Passwords do not match" {
		t.Fatalf("confirm error = %q", got)
	}
	form.Change(c, confirm, "secret1")
	if got := c.Error("confirm"); got != "" {
		t.Fatalf("expected cleared confirm error, got %q", got)
	}
}

func TestValuesSchema_ResetRestoresByValue(t *testing.T) {
	email := form.Key("email", func(v string) string {
		if v == "" {
			return "Email is required"
		}
		return ""
	})
	tags := form.Key("tags", form.Optional[[]any])
	schema, err := form.NewValuesSchema(email, tags)
	if err != nil {
		t.Fatalf("new values schema: %v", err)
	}

	initial := form.Values{"email": "", "tags": []any{"a"}}
	c := form.New(initial, schema, nil)

	form.Change(c, email, "me@example.com")
	initial["email"] = "changed outside"
	initial["tags"].([]any)[0] = "z"

	c.ResetForm()
	want := form.Values{"email": "", "tags": []any{"a"}}
	if diff := cmp.Diff(want, c.Values()); diff != "" {
		t.Fatalf("reset values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "tags"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
