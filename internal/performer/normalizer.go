// Package performer cleans and screens the performer name strings crawlers
// attach to an extraction. Every function is pure and total.
package performer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// a single bracket pair closing the string, e.g. "名前 [単体]" or "名前【専属】"
	trailingBracket = regexp.MustCompile(`\s*(\[[^\[\]]*\]|【[^【】]*】|［[^［］]*］|\(\s*\)|（\s*）)$`)
	// a reading or alias annotation in half-width or full-width parentheses
	parenthetical = regexp.MustCompile(`\s*[(（][^()（）]*[)）]`)
)

// Normalize returns the display form of a raw performer name.
//
// Names containing Han or kana are treated as Japanese and lose all internal
// whitespace. Other names keep single spaces between words.
func Normalize(raw string) string {
	s := strings.TrimFunc(raw, unicode.IsSpace)
	if s == "" {
		return ""
	}

	s = trailingBracket.ReplaceAllString(s, "")
	// only the first annotation is a reading; later ones are part of the name
	if loc := parenthetical.FindStringIndex(s); loc != nil {
		s = s[:loc[0]] + s[loc[1]:]
	}

	if hasJapaneseScript(s) {
		s = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	} else {
		s = strings.Join(strings.Fields(s), " ")
	}

	return strings.TrimFunc(s, unicode.IsSpace)
}

// hasJapaneseScript reports whether s contains any Han, Hiragana or Katakana rune.
// Mixed-script names take this branch too.
func hasJapaneseScript(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}
