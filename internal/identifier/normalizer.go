// Package identifier canonicalizes provider product codes into the normalized ids
// used to deduplicate products across providers.
package identifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/feral-file/ff-catalog-ingest/internal/domain"
)

const defaultPad = 3

// RewriteRule describes how a provider family spells a code that maps onto the
// public LABEL-NUMBER form. Pattern is matched against the upper-cased raw code
// and must expose a "number" group and, unless Label is set, a "label" group.
// An optional "suffix" group is appended after the number, so part or edition
// letters keep distinct listings apart.
type RewriteRule struct {
	Pattern string `json:"pattern"`
	Label   string `json:"label,omitempty"`
	Pad     int    `json:"pad,omitempty"`
}

type compiledRule struct {
	re          *regexp.Regexp
	label       string
	labelIndex  int
	numberIndex int
	suffixIndex int
	pad         int
}

// Normalizer maps raw provider codes to normalized ids. It holds only
// compiled rules and is safe for concurrent use.
type Normalizer struct {
	rules map[domain.ProviderFamily][]compiledRule
}

// NewNormalizer compiles the rewrite rules for each provider family
func NewNormalizer(rules map[domain.ProviderFamily][]RewriteRule) (*Normalizer, error) {
	n := &Normalizer{rules: make(map[domain.ProviderFamily][]compiledRule, len(rules))}

	for family, familyRules := range rules {
		for i, rule := range familyRules {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid rewrite rule %d for %s: %w", i, family, err)
			}

			numberIndex := re.SubexpIndex("number")
			if numberIndex < 0 {
				return nil, fmt.Errorf("rewrite rule %d for %s has no number group", i, family)
			}
			labelIndex := re.SubexpIndex("label")
			if labelIndex < 0 && rule.Label == "" {
				return nil, fmt.Errorf("rewrite rule %d for %s has neither a label group nor a fixed label", i, family)
			}

			pad := rule.Pad
			if pad <= 0 {
				pad = defaultPad
			}

			n.rules[family] = append(n.rules[family], compiledRule{
				re:          re,
				label:       strings.ToUpper(rule.Label),
				labelIndex:  labelIndex,
				numberIndex: numberIndex,
				suffixIndex: re.SubexpIndex("suffix"),
				pad:         pad,
			})
		}
	}

	return n, nil
}

// Normalize returns the normalized id for a raw provider code.
//
// When one of the family's rules matches, the result is the public LABEL-NUMBER
// form shared by every provider selling the same release. Otherwise the result
// is "{family}-{code}" in lower case, which is unique per provider family.
// An empty code yields an empty id.
func (n *Normalizer) Normalize(family domain.ProviderFamily, rawCode string) domain.NormalizedID {
	code := strings.TrimSpace(rawCode)
	if code == "" {
		return ""
	}

	upper := strings.ToUpper(code)
	if n != nil {
		for _, rule := range n.rules[family] {
			match := rule.re.FindStringSubmatch(upper)
			if match == nil {
				continue
			}

			label := rule.label
			if label == "" {
				label = stripSeparators(match[rule.labelIndex])
			}
			if label == "" {
				continue
			}

			id := label + "-" + padNumber(match[rule.numberIndex], rule.pad)
			if rule.suffixIndex >= 0 {
				id += stripSeparators(match[rule.suffixIndex])
			}
			return domain.NormalizedID(id)
		}
	}

	return Fallback(family, code)
}

// HasRules reports whether the family has at least one rewrite rule
func (n *Normalizer) HasRules(family domain.ProviderFamily) bool {
	return n != nil && len(n.rules[family]) > 0
}

// Fallback returns the provider-scoped id used when no cross-provider mapping exists
func Fallback(family domain.ProviderFamily, rawCode string) domain.NormalizedID {
	code := strings.TrimSpace(rawCode)
	if code == "" {
		return ""
	}
	return domain.NormalizedID(fmt.Sprintf("%s-%s", family, strings.ToLower(code)))
}

// padNumber strips leading zeros and left-pads the number to width
func padNumber(number string, width int) string {
	trimmed := strings.TrimLeft(number, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	if len(trimmed) < width {
		trimmed = strings.Repeat("0", width-len(trimmed)) + trimmed
	}
	return trimmed
}

// stripSeparators removes everything but ASCII letters and digits
func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
