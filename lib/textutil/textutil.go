package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Clean collapses whitespace runs into single spaces and trims the
// result. The clerk system strips whitespace between inline elements,
// which runs adjacent phrases together ("10Adopted", "ADOPTEDMotion"),
// so a line break is restored at every boundary where a digit or an
// uppercase letter is followed by a capitalized word.
func Clean(raw string, lower bool) string {
	out := whitespaceRegex.ReplaceAllString(strings.TrimSpace(raw), " ")
	out = splitRunTogether(out)
	if lower {
		return strings.ToLower(out)
	}
	return out
}

func splitRunTogether(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		b.WriteRune(r)
		if i+2 >= len(runes) {
			continue
		}
		startsWord := isUpper(runes[i+1]) && isLower(runes[i+2])
		if startsWord && (isDigit(r) || isUpper(r)) {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// StripInner removes every whitespace character, including inner ones.
// Used to sanitize date fragments pulled out of free text blocks.
func StripInner(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), "")
}
