package identifier

import (
	"regexp"
	"strings"
)

// codeShape splits a code into its letter label and trailing number
var codeShape = regexp.MustCompile(`^([A-Z0-9][A-Z0-9_-]*?[A-Z]|[A-Z])[-_ ]*([0-9]+)$`)

var paddingWidths = []int{3, 4, 5}

// Variations expands a raw code into the spellings people and other systems use
// for the same release: case variants, with and without a hyphen, and with the
// numeric part zero-padded or unpadded. The result is deduplicated and its
// order depends only on the input.
func Variations(rawCode string) []string {
	code := strings.TrimSpace(rawCode)
	if code == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	upper := strings.ToUpper(code)
	add(code)
	add(upper)
	add(strings.ToLower(code))

	match := codeShape.FindStringSubmatch(upper)
	if match == nil {
		add(stripSeparators(upper))
		add(strings.ToLower(stripSeparators(upper)))
		return out
	}

	label := stripSeparators(match[1])
	digits := match[2]
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		trimmed = "0"
	}

	numbers := []string{digits, trimmed}
	for _, width := range paddingWidths {
		if len(trimmed) <= width {
			numbers = append(numbers, padNumber(trimmed, width))
		}
	}

	for _, number := range numbers {
		for _, sep := range []string{"-", ""} {
			v := label + sep + number
			add(v)
			add(strings.ToLower(v))
		}
	}

	return out
}
