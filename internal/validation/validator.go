// Package validation decides whether a crawl produced a real product page or
// silently landed on a storefront, listing or age-gate page.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/registry"
)

// Result is the outcome of a validation check
type Result struct {
	Accepted bool
	Reason   domain.RejectReason
}

// Accept is the result of a passing check
func Accept() Result {
	return Result{Accepted: true}
}

// Reject builds a failing result with reason
func Reject(reason domain.RejectReason) Result {
	return Result{Accepted: false, Reason: reason}
}

// Validator checks extractions and navigations against the provider registry's pattern tables.
// It performs no I/O.
type Validator struct {
	registry registry.ProviderRegistry
}

// NewValidator creates a Validator backed by reg
func NewValidator(reg registry.ProviderRegistry) *Validator {
	return &Validator{registry: reg}
}

// Validate applies the extraction checks in order and returns the first rejection, if any
func (v *Validator) Validate(ext *domain.RawExtraction) Result {
	if ext == nil {
		return Reject(domain.RejectPlaceholderTitle)
	}

	title := ext.TrimmedTitle()
	if v.isPlaceholderTitle(ext, title) {
		return Reject(domain.RejectPlaceholderTitle)
	}

	for _, re := range v.registry.TitlePatterns(ext.Provider) {
		if re.MatchString(title) {
			return Reject(domain.RejectTopPageTitle)
		}
	}

	if utf8.RuneCountInString(title) < domain.MIN_TITLE_LENGTH {
		return Reject(domain.RejectTitleTooShort)
	}

	description := strings.TrimSpace(ext.Description)
	if description != "" {
		for _, re := range v.registry.DescriptionPatterns(ext.Provider) {
			if re.MatchString(description) {
				return Reject(domain.RejectBoilerplateDescription)
			}
		}
	}

	return Accept()
}

// isPlaceholderTitle reports a blank title, the "{provider}-{code}" stand-in, or a title
// that is only the product code in raw or normalized form
func (v *Validator) isPlaceholderTitle(ext *domain.RawExtraction, title string) bool {
	if title == "" {
		return true
	}
	if strings.EqualFold(title, ext.PlaceholderTitle()) {
		return true
	}

	code := strings.TrimSpace(ext.ProviderCode)
	if code == "" {
		return false
	}
	if strings.EqualFold(title, code) {
		return true
	}

	family := ext.Family
	if family == "" {
		family = v.registry.Family(ext.Provider)
	}
	normalized := v.registry.Normalizer().Normalize(family, code)
	return strings.EqualFold(title, normalized.String())
}
