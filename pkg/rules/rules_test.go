package rules_test

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/rules"
)

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		got  bool
		want bool
	}{
		{"empty nil", rules.IsEmpty(nil), true},
		{"empty blank", rules.IsEmpty("   "), true},
		{"empty slice", rules.IsEmpty([]int{}), true},
		{"empty map", rules.IsEmpty(map[string]any{}), true},
		{"non-empty number", rules.IsEmpty(0), false},
		{"email ok", rules.IsValidEmail("jane@example.com"), true},
		{"email no domain dot", rules.IsValidEmail("jane@example"), false},
		{"email spaces", rules.IsValidEmail("ja ne@example.com"), false},
		{"strong password", rules.IsStrongPassword("Abcde1"), true},
		{"weak password", rules.IsStrongPassword("abcdef"), false},
		{"phone ok", rules.IsValidPhoneNumber("+1 (555) 123-4567"), true},
		{"phone short", rules.IsValidPhoneNumber("12345"), false},
		{"name ok", rules.IsValidName("Mary-Jane O'Neil"), true},
		{"name digits", rules.IsValidName("R2D2"), false},
		{"url ok", rules.IsValidURL("https://example.com/path"), true},
		{"url relative", rules.IsValidURL("/relative"), false},
		{"range inside", rules.IsWithinRange(5, 1, 10), true},
		{"range outside", rules.IsWithinRange(11, 1, 10), false},
		{"card luhn ok", rules.IsValidCreditCard("4111 1111 1111 1111"), true},
		{"card luhn bad", rules.IsValidCreditCard("4111111111111112"), false},
		{"card too short", rules.IsValidCreditCard("4242"), false},
		{"date leap", rules.IsValidDateFormat("2024-02-29"), true},
		{"date not leap", rules.IsValidDateFormat("2023-02-29"), false},
		{"date format", rules.IsValidDateFormat("29/02/2024"), false},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestPasswordStrengthFeedback(t *testing.T) {
	want := []string{
		"Password must be at least 6 characters long",
		"Password must contain at least one uppercase letter",
		"Password must contain at least one number",
	}
	if diff := cmp.Diff(want, rules.PasswordStrength("abc")); diff != "" {
		t.Fatalf("feedback mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Password is required"}, rules.PasswordStrength("")); diff != "" {
		t.Fatalf("feedback mismatch (-want +got):\n%s", diff)
	}
}

func TestAmount(t *testing.T) {
	validate := rules.Amount(10000, rules.AmountMessages{
		Required: "Amount is required",
		Invalid:  "Please enter a valid amount",
		Max:      "Maximum transfer amount is $10,000",
	})

	cases := map[string]string{
		"":       "Amount is required",
		"abc":    "Please enter a valid amount",
		"-5":     "Please enter a valid amount",
		"0":      "Please enter a valid amount",
		"NaN":    "Please enter a valid amount",
		"10001":  "Maximum transfer amount is $10,000",
		"10,000": "Please enter a valid amount",
		" 42 ":   "",
		"25.50":  "",
	}
	for input, want := range cases {
		if got := validate(input); got != want {
			t.Errorf("Amount(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestChainReturnsFirstFailure(t *testing.T) {
	validate := rules.Chain(
		rules.Required("Email is required"),
		rules.Email("Invalid email address"),
	)
	if got := validate(""); got != "Email is required" {
		t.Fatalf("blank: %q", got)
	}
	if got := validate("nope"); got != "Invalid email address" {
		t.Fatalf("malformed: %q", got)
	}
	if got := validate("a@b.co"); got != "" {
		t.Fatalf("valid: %q", got)
	}
}

func TestStringValidators(t *testing.T) {
	cases := []struct {
		name     string
		validate form.Validator[string]
		input    string
		want     string
	}{
		{"min length short", rules.MinLength(6, "too short"), "abc", "too short"},
		{"min length blank", rules.MinLength(6, "too short"), "", ""},
		{"max length", rules.MaxLength(3, "too long"), "abcd", "too long"},
		{"pattern", rules.Pattern(regexp.MustCompile(`^[a-z]+$`), "lower only"), "ABC", "lower only"},
		{"digits ok", rules.Digits(4, "4 digits"), "1234", ""},
		{"digits letters", rules.Digits(4, "4 digits"), "12a4", "4 digits"},
		{"digits short", rules.Digits(4, "4 digits"), "123", "4 digits"},
		{"one of", rules.OneOf([]string{"immediate", "1day"}, "pick one"), "never", "pick one"},
		{"one of blank", rules.OneOf([]string{"immediate"}, "pick one"), "", ""},
		{"range", rules.Range(1, 5, "1 to 5"), "7", "1 to 5"},
		{"markup rejected", rules.NoMarkup("no html"), "<b>hi</b>", "no html"},
		{"markup entities ok", rules.NoMarkup("no html"), "Tom & Jerry < 3", ""},
		{"markup escaped entity ok", rules.NoMarkup("no html"), "rent &amp; food", ""},
		{"markup unclosed bracket ok", rules.NoMarkup("no html"), "x<y", ""},
		{"markup comment rejected", rules.NoMarkup("no html"), "hi <!-- there -->", "no html"},
		{"markup closing tag rejected", rules.NoMarkup("no html"), "lunch</p>", "no html"},
		{"min below", rules.Min(18, false, "at least 18"), "3", "at least 18"},
		{"min equal", rules.Min(18, false, "at least 18"), "18", ""},
		{"min exclusive equal", rules.Min(0, true, "above 0"), "0", "above 0"},
		{"min blank", rules.Min(18, false, "at least 18"), "", ""},
		{"min not a number", rules.Min(18, false, "at least 18"), "old", "at least 18"},
		{"max above", rules.Max(100, false, "at most 100"), "101", "at most 100"},
		{"max blank", rules.Max(100, false, "at most 100"), "", ""},
		{"max exclusive equal", rules.Max(100, true, "below 100"), "100", "below 100"},
		{"strong password", rules.StrongPassword(), "abcdef", "Password must contain at least one uppercase letter"},
		{"date", rules.Date("bad date"), "2024-13-01", "bad date"},
	}
	for _, tc := range cases {
		if got := tc.validate(tc.input); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAccepted(t *testing.T) {
	validate := rules.Accepted("You must agree to the terms and conditions")
	if got := validate(false); got == "" {
		t.Fatalf("expected failure when unchecked")
	}
	if got := validate(true); got != "" {
		t.Fatalf("expected pass when checked, got %q", got)
	}
}

func TestValidateAllReturnsOnlyFailures(t *testing.T) {
	got := rules.ValidateAll(
		map[string]string{"email": "bad", "name": "Jane"},
		map[string]form.Validator[string]{
			"email":    rules.Email("Invalid email address"),
			"name":     rules.Required("Name is required"),
			"password": rules.Required("Password is required"),
		},
	)
	want := map[string]string{
		"email":    "Invalid email address",
		"password": "Password is required",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestStripMarkup(t *testing.T) {
	if got := rules.StripMarkup("<b>Lunch</b> <i>money</i>"); got != "Lunch money" {
		t.Fatalf("StripMarkup = %q", got)
	}
}
