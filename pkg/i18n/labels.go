package i18n

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler turns a property name into a label: "firstName" and
// "first_name" both become "First Name", "address2" becomes "Address 2".
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range splitWordsPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(input string) string {
	runes := []rune(input)
	var out strings.Builder
	for i, r := range runes {
		if i > 0 && isBoundary(runes, i) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

// isBoundary splits lower→Upper, letter↔digit, and the last capital of an
// acronym run followed by lowercase ("HTMLPage" → "HTML Page").
func isBoundary(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(cur):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(cur):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		return true
	}
	return false
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(word)
	if isAllUpper(runes) && len(runes) > 1 {
		return word
	}
	// casers keep state, so one per call
	return cases.Title(language.Und).String(word)
}

func isAllUpper(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
