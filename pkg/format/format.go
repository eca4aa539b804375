// Package format renders amounts, dates and identifiers for summaries shown
// after a form is submitted.
package format

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"BTC": "₿",
	"ETH": "Ξ",
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats amount with two decimals, thousands separators and the
// currency symbol, e.g. "$1,234.50". Unknown codes are used as a prefix.
func Currency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	digits := printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	return sign + symbol + digits
}

// Date formats t as "Jan 2, 2006", adding the time of day when includeTime is
// set.
func Date(t time.Time, includeTime bool) string {
	if includeTime {
		return t.Format("Jan 2, 2006, 3:04 PM")
	}
	return t.Format("Jan 2, 2006")
}

// Relative describes how long ago t was compared to now. Anything a week old
// or more falls back to Date.
func Relative(t, now time.Time) string {
	diff := now.Sub(t)
	secs := int(diff / time.Second)
	mins := secs / 60
	hours := mins / 60
	days := hours / 24

	switch {
	case secs < 60:
		return "Just now"
	case mins < 60:
		return plural(mins, "minute") + " ago"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return Date(t, false)
	}
}

// Mask hides everything but the first visibleStart and last visibleEnd
// characters of s.
func Mask(s string, visibleStart, visibleEnd int, maskChar rune) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	n := len(runes)
	start := clamp(visibleStart, 0, n)
	end := clamp(visibleEnd, 0, n)
	if start+end >= n {
		return s
	}
	hidden := n - start - end

	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(strings.Repeat(string(maskChar), hidden))
	b.WriteString(string(runes[n-end:]))
	return b.String()
}

// Truncate shortens s to maxLength characters followed by suffix.
func Truncate(s string, maxLength int, suffix string) string {
	if s == "" || utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	return string([]rune(s)[:maxLength]) + suffix
}

// Percentage renders a ratio as a percentage, e.g. 0.1234 -> "12.34%".
func Percentage(value float64, decimals int) string {
	return strconv.FormatFloat(value*100, 'f', decimals, 64) + "%"
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ID returns a random alphanumeric identifier of the given length. It is meant
// for display references, not for anything security sensitive.
func ID(length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(buf)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
