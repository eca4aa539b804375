package rules

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{8,}$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z\s\-']+$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsEmpty reports whether value is nil, a blank string, or an empty slice,
// array or map.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsValidEmail checks for a local part, an "@" and a dotted domain.
func IsValidEmail(email string) bool {
	if IsEmpty(email) {
		return false
	}
	return emailPattern.MatchString(email)
}

// IsStrongPassword requires at least six characters with an upper case
// letter, a lower case letter and a digit.
func IsStrongPassword(password string) bool {
	return len(PasswordStrength(password)) == 0
}

// PasswordStrength lists what password is missing to be strong. An empty
// result means the password is acceptable.
func PasswordStrength(password string) []string {
	if IsEmpty(password) {
		return []string{"Password is required"}
	}

	var feedback []string
	if len(password) < 6 {
		feedback = append(feedback, "Password must be at least 6 characters long")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		feedback = append(feedback, "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		feedback = append(feedback, "Password must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		feedback = append(feedback, "Password must contain at least one number")
	}
	return feedback
}

// IsValidPhoneNumber accepts an optional leading "+" followed by at least
// eight digits, spaces, dashes or parentheses.
func IsValidPhoneNumber(phone string) bool {
	if IsEmpty(phone) {
		return false
	}
	return phonePattern.MatchString(phone)
}

// IsValidName allows letters, spaces, hyphens and apostrophes.
func IsValidName(name string) bool {
	if IsEmpty(name) {
		return false
	}
	return namePattern.MatchString(name)
}

// IsValidURL requires an absolute URL with a scheme.
func IsValidURL(raw string) bool {
	if IsEmpty(raw) {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && (parsed.Host != "" || parsed.Opaque != "")
}

// IsWithinRange reports min <= value <= max.
func IsWithinRange(value, min, max float64) bool {
	return value >= min && value <= max
}

// IsValidCreditCard checks the digit count (13 to 19, separators ignored) and
// the Luhn checksum.
func IsValidCreditCard(number string) bool {
	if IsEmpty(number) {
		return false
	}

	digits := make([]int, 0, len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		digit := digits[i]
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// IsValidDateFormat accepts YYYY-MM-DD strings naming a real calendar date.
func IsValidDateFormat(date string) bool {
	if IsEmpty(date) || !datePattern.MatchString(date) {
		return false
	}
	_, err := time.Parse(time.DateOnly, date)
	return err == nil
}
