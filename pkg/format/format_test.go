package format

import (
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		code   string
		want   string
	}{
		{1234.5, "USD", "$1,234.50"},
		{0, "", "$0.00"},
		{-12, "eur", "-€12.00"},
		{10, "CHF", "CHF 10.00"},
	}
	for _, tc := range cases {
		if got := Currency(tc.amount, tc.code); got != tc.want {
			t.Errorf("Currency(%v, %q) = %q, want %q", tc.amount, tc.code, got, tc.want)
		}
	}
}

func TestDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	if got := Date(ts, false); got != "Mar 5, 2024" {
		t.Fatalf("Date = %q", got)
	}
	if got := Date(ts, true); got != "Mar 5, 2024, 2:07 PM" {
		t.Fatalf("Date with time = %q", got)
	}
}

func TestRelative(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{30 * time.Hour, "Yesterday"},
		{3 * 24 * time.Hour, "3 days ago"},
		{8 * 24 * time.Hour, "Mar 2, 2024"},
	}
	for _, tc := range cases {
		if got := Relative(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("Relative(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestMaskTruncatePercentage(t *testing.T) {
	if got := Mask("4111111111111111", 4, 4, '*'); got != "4111********1111" {
		t.Fatalf("Mask = %q", got)
	}
	if got := Mask("abc", 4, 4, '*'); got != "abc" {
		t.Fatalf("Mask short = %q", got)
	}
	if got := Truncate("Lunch money for Friday", 5, "..."); got != "Lunch..." {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("short", 10, "..."); got != "short" {
		t.Fatalf("Truncate untouched = %q", got)
	}
	if got := Percentage(0.1234, 2); got != "12.34%" {
		t.Fatalf("Percentage = %q", got)
	}
}

func TestID(t *testing.T) {
	id := ID(10)
	if len(id) != 10 {
		t.Fatalf("ID length = %d", len(id))
	}
	if ID(0) != "" {
		t.Fatalf("zero length ID should be empty")
	}
}
