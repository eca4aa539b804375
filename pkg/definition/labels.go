package definition

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-\s.]+`)

// Label turns a field identifier into a sentence-case label:
// "fullName" and "full_name" both become "Full name".
func Label(name string) string {
	var words []string
	for _, chunk := range wordSeparators.Split(strings.TrimSpace(name), -1) {
		words = append(words, splitCamel(chunk)...)
	}
	if len(words) == 0 {
		return ""
	}
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}

func splitCamel(chunk string) []string {
	if chunk == "" {
		return nil
	}
	var (
		words   []string
		current []rune
	)
	runes := []rune(chunk)
	for i, r := range runes {
		if i > 0 && boundary(runes[i-1], r) {
			words = append(words, string(current))
			current = current[:0]
		}
		current = append(current, r)
	}
	return append(words, string(current))
}

func boundary(prev, r rune) bool {
	return (unicode.IsLower(prev) && unicode.IsUpper(r)) ||
		(unicode.IsLetter(prev) && unicode.IsDigit(r)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(r))
}
