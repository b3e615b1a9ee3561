package validation

import (
	"net/url"
	"strings"

	"github.com/feral-file/ff-catalog-ingest/internal/domain"
)

// DetectRedirect classifies a completed navigation. It rejects when the final host differs from
// the requested one, when a deep link ended on the site root, or when the final path looks like a
// listing, search, age-gate, login or error page for the provider.
//
// An empty finalURL carries no navigation information and is accepted. When requestedURL is empty
// the provider's registered host is used as the reference.
func (v *Validator) DetectRedirect(provider, requestedURL, finalURL string) Result {
	finalURL = strings.TrimSpace(finalURL)
	if finalURL == "" {
		return Accept()
	}

	final, err := url.Parse(finalURL)
	if err != nil || final.Host == "" {
		return Reject(domain.RejectRedirectUnparseable)
	}

	requestedURL = strings.TrimSpace(requestedURL)
	if requestedURL == "" {
		if info, ok := v.registry.Provider(provider); ok {
			requestedURL = info.HostURL()
		}
	}

	if requestedURL != "" {
		if requested, err := url.Parse(requestedURL); err == nil && requested.Host != "" {
			if canonicalHost(requested) != canonicalHost(final) {
				return Reject(domain.RejectRedirectHost)
			}
			if !isRootPath(requested.Path) && isRootPath(final.Path) {
				return Reject(domain.RejectRedirectRoot)
			}
		}
	}

	path := final.EscapedPath()
	if final.RawQuery != "" {
		path += "?" + final.RawQuery
	}
	for _, re := range v.registry.RedirectPatterns(provider) {
		if re.MatchString(final.Path) || re.MatchString(path) {
			return Reject(domain.RejectRedirectListing)
		}
	}

	return Accept()
}

// canonicalHost lower-cases the hostname and drops a leading "www."
func canonicalHost(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func isRootPath(p string) bool {
	return p == "" || p == "/"
}
