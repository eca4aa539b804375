package rules

import (
	"errors"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/form"
)

var errNotFinite = errors.New("rules: amount is not a finite number")

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// Chain runs validators in order and returns the first failure.
func Chain[V any](validators ...form.Validator[V]) form.Validator[V] {
	return func(value V) string {
		for _, validate := range validators {
			if validate == nil {
				continue
			}
			if msg := validate(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// Required fails with msg on blank strings.
func Required(msg string) form.Validator[string] {
	return func(value string) string {
		if IsEmpty(value) {
			return msg
		}
		return ""
	}
}

// Accepted fails with msg unless the box is checked.
func Accepted(msg string) form.Validator[bool] {
	return func(value bool) string {
		if !value {
			return msg
		}
		return ""
	}
}

// Email fails with msg when a non-blank value is not an email address. Pair it
// with Required to reject blanks.
func Email(msg string) form.Validator[string] {
	return unlessBlank(IsValidEmail, msg)
}

// Phone fails with msg on malformed phone numbers.
func Phone(msg string) form.Validator[string] {
	return unlessBlank(IsValidPhoneNumber, msg)
}

// Name fails with msg on names with digits or symbols.
func Name(msg string) form.Validator[string] {
	return unlessBlank(IsValidName, msg)
}

// URL fails with msg on relative or malformed URLs.
func URL(msg string) form.Validator[string] {
	return unlessBlank(IsValidURL, msg)
}

// CreditCard fails with msg on card numbers failing the Luhn check.
func CreditCard(msg string) form.Validator[string] {
	return unlessBlank(IsValidCreditCard, msg)
}

// Date fails with msg unless the value is a YYYY-MM-DD calendar date.
func Date(msg string) form.Validator[string] {
	return unlessBlank(IsValidDateFormat, msg)
}

// StrongPassword reports the first missing password requirement.
func StrongPassword() form.Validator[string] {
	return func(value string) string {
		if feedback := PasswordStrength(value); len(feedback) > 0 {
			return feedback[0]
		}
		return ""
	}
}

// MinLength fails with msg when a non-blank value has fewer than n characters.
func MinLength(n int, msg string) form.Validator[string] {
	return func(value string) string {
		if value != "" && utf8.RuneCountInString(value) < n {
			return msg
		}
		return ""
	}
}

// MaxLength fails with msg when value has more than n characters.
func MaxLength(n int, msg string) form.Validator[string] {
	return func(value string) string {
		if utf8.RuneCountInString(value) > n {
			return msg
		}
		return ""
	}
}

// Pattern fails with msg when a non-blank value does not match re.
func Pattern(re *regexp.Regexp, msg string) form.Validator[string] {
	return func(value string) string {
		if value != "" && !re.MatchString(value) {
			return msg
		}
		return ""
	}
}

// Digits fails with msg unless value is exactly n ASCII digits.
func Digits(n int, msg string) form.Validator[string] {
	return func(value string) string {
		if len(value) != n {
			return msg
		}
		for _, r := range value {
			if r < '0' || r > '9' {
				return msg
			}
		}
		return ""
	}
}

// OneOf fails with msg when a non-blank value is not one of options.
func OneOf(options []string, msg string) form.Validator[string] {
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[option] = struct{}{}
	}
	return func(value string) string {
		if value == "" {
			return ""
		}
		if _, ok := allowed[value]; !ok {
			return msg
		}
		return ""
	}
}

// AmountMessages holds the copy shown by Amount.
type AmountMessages struct {
	Required string
	Invalid  string
	Max      string
}

// Amount validates a decimal amount typed as text: it must be present, parse
// as a number greater than zero and, when max is positive, not exceed max.
func Amount(max float64, msgs AmountMessages) form.Validator[string] {
	return func(value string) string {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return msgs.Required
		}
		amount, err := ParseAmount(trimmed)
		if err != nil || amount <= 0 {
			return msgs.Invalid
		}
		if max > 0 && amount > max {
			return msgs.Max
		}
		return ""
	}
}

// Range fails with msg when a non-blank numeric value is outside [min, max]
// or is not a number.
func Range(min, max float64, msg string) form.Validator[string] {
	return func(value string) string {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return ""
		}
		number, err := ParseAmount(trimmed)
		if err != nil || !IsWithinRange(number, min, max) {
			return msg
		}
		return ""
	}
}

// Min fails with msg when a non-blank value is not a number at or above min,
// or strictly above it when exclusive is set.
func Min(min float64, exclusive bool, msg string) form.Validator[string] {
	return bound(func(n float64) bool {
		if exclusive {
			return n > min
		}
		return n >= min
	}, msg)
}

// Max fails with msg when a non-blank value is not a number at or below max,
// or strictly below it when exclusive is set.
func Max(max float64, exclusive bool, msg string) form.Validator[string] {
	return bound(func(n float64) bool {
		if exclusive {
			return n < max
		}
		return n <= max
	}, msg)
}

func bound(ok func(float64) bool, msg string) form.Validator[string] {
	return func(value string) string {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return ""
		}
		number, err := ParseAmount(trimmed)
		if err != nil || !ok(number) {
			return msg
		}
		return ""
	}
}

// ParseAmount parses a plain decimal number. Thousands separators are
// rejected.
func ParseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errNotFinite
	}
	return amount, nil
}

// NoMarkup fails with msg when value contains HTML elements. Entities and
// stray angle brackets in plain text are accepted.
func NoMarkup(msg string) form.Validator[string] {
	return func(value string) string {
		if !hasTag(value) {
			return ""
		}
		if html.UnescapeString(strictPolicy().Sanitize(value)) != html.UnescapeString(value) {
			return msg
		}
		return ""
	}
}

// hasTag reports whether value holds something shaped like a tag, comment or
// doctype: a '<' followed by a letter, '/' or '!' and closed by a later '>'.
func hasTag(value string) bool {
	for i := 0; i < len(value)-1; i++ {
		if value[i] != '<' {
			continue
		}
		next := value[i+1]
		opens := next == '/' || next == '!' || ('a' <= next && next <= 'z') || ('A' <= next && next <= 'Z')
		if opens && strings.IndexByte(value[i+2:], '>') >= 0 {
			return true
		}
	}
	return false
}

// StripMarkup removes HTML elements from value.
func StripMarkup(value string) string {
	return html.UnescapeString(strictPolicy().Sanitize(value))
}

func strictPolicy() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return markupPolicy
}

func unlessBlank(valid func(string) bool, msg string) form.Validator[string] {
	return func(value string) string {
		if IsEmpty(value) || valid(value) {
			return ""
		}
		return msg
	}
}
