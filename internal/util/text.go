package util

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var reYear = regexp.MustCompile(`\d{4}`)

// Upper applies full Unicode upper-casing, so special casings such as
// "ß" -> "SS" expand the way the codebook expects.
func Upper(input string) string {
	if input == "" {
		return ""
	}
	return cases.Upper(language.Und).String(input)
}

// ExtractYear returns the first run of four digits, or "" when there is none.
func ExtractYear(input string) string {
	return reYear.FindString(input)
}

// ZFill left-pads s with zeros to width characters. A leading sign stays in
// front of the padding.
func ZFill(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	pad := strings.Repeat("0", width-n)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[:1] + pad + s[1:]
	}
	return pad + s
}
