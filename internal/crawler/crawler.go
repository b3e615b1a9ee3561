// Package crawler defines the contract between the ingest orchestrator and the
// per-provider crawlers that fetch and parse storefront pages.
package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/feral-file/ff-catalog-ingest/internal/domain"
)

// ErrPermanent marks a fetch failure that retrying cannot fix (gone page, blocked request)
var ErrPermanent = errors.New("permanent crawl failure")

// Permanent wraps err so the orchestrator does not retry it
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// IsPermanent reports whether err was marked as permanent
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}

// Page is a fetched storefront page
type Page struct {
	// RequestedURL is the URL the crawler asked for
	RequestedURL string
	// FinalURL is the URL the crawler ended on after following redirects
	FinalURL string
	Body     []byte
}

// Crawler fetches and parses the product pages of one provider
//
//go:generate mockgen -source=crawler.go -destination=../mocks/crawler.go -package=mocks -mock_names=Crawler=MockCrawler
type Crawler interface {
	// Name returns the registered provider name the crawler serves
	Name() string

	// Targets lists the product page URLs to visit in this run
	Targets(ctx context.Context) ([]string, error)

	// Fetch loads a product page. Errors wrapped with Permanent are not retried.
	Fetch(ctx context.Context, url string) (*Page, error)

	// Extract parses a fetched page into an unvalidated extraction
	Extract(ctx context.Context, page *Page) (*domain.RawExtraction, error)
}
