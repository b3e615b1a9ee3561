// Package feed implements a crawler over a JSON feed of pre-extracted product
// records. It lets the ingest job run end to end against exported provider
// data without a storefront scraper.
package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/crawler"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/logger"
)

// Document is the feed file layout
type Document struct {
	Provider string `json:"provider"`
	Items    []Item `json:"items"`
}

// Item is one feed entry: the page that was visited and what was extracted from it
type Item struct {
	URL        string               `json:"url"`
	FinalURL   string               `json:"final_url"`
	Extraction domain.RawExtraction `json:"extraction"`
}

type feedCrawler struct {
	provider string
	source   string
	fs       adapter.FileSystem
	http     adapter.HTTPClient
	json     adapter.JSON

	mu    sync.Mutex
	items map[string]Item
}

// NewCrawler creates a crawler for provider reading the feed at source.
// source is an http(s) URL or a local file path.
func NewCrawler(provider, source string, fs adapter.FileSystem, httpClient adapter.HTTPClient, json adapter.JSON) crawler.Crawler {
	return &feedCrawler{
		provider: strings.ToLower(strings.TrimSpace(provider)),
		source:   source,
		fs:       fs,
		http:     httpClient,
		json:     json,
	}
}

// Name returns the provider name the feed belongs to
func (c *feedCrawler) Name() string {
	return c.provider
}

// Targets loads the feed and returns the item URLs in feed order
func (c *feedCrawler) Targets(ctx context.Context) ([]string, error) {
	doc, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]Item, len(doc.Items))
	targets := make([]string, 0, len(doc.Items))
	for i, item := range doc.Items {
		url := strings.TrimSpace(item.URL)
		if url == "" {
			logger.WarnCtx(ctx, "Skipping feed item without url", zap.String("provider", c.provider), zap.Int("index", i))
			continue
		}
		if _, dup := c.items[url]; dup {
			continue
		}
		c.items[url] = item
		targets = append(targets, url)
	}

	return targets, nil
}

// Fetch returns the recorded page for a feed item
func (c *feedCrawler) Fetch(ctx context.Context, url string) (*crawler.Page, error) {
	c.mu.Lock()
	item, ok := c.items[url]
	c.mu.Unlock()
	if !ok {
		return nil, crawler.Permanent(fmt.Errorf("url %s is not in the feed", url))
	}

	body, err := c.json.Marshal(item.Extraction)
	if err != nil {
		return nil, crawler.Permanent(fmt.Errorf("failed to encode feed item: %w", err))
	}

	finalURL := item.FinalURL
	if finalURL == "" {
		finalURL = item.URL
	}

	return &crawler.Page{
		RequestedURL: item.URL,
		FinalURL:     finalURL,
		Body:         body,
	}, nil
}

// Extract decodes the page body back into an extraction and stamps the navigation info
func (c *feedCrawler) Extract(ctx context.Context, page *crawler.Page) (*domain.RawExtraction, error) {
	if page == nil {
		return nil, fmt.Errorf("nil page")
	}

	var ext domain.RawExtraction
	if err := c.json.Unmarshal(page.Body, &ext); err != nil {
		return nil, fmt.Errorf("failed to decode feed item: %w", err)
	}

	if ext.Provider == "" {
		ext.Provider = c.provider
	}
	ext.RequestedURL = page.RequestedURL
	ext.FinalURL = page.FinalURL

	return &ext, nil
}

func (c *feedCrawler) load(ctx context.Context) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(c.source, "http://") || strings.HasPrefix(c.source, "https://") {
		data, err = c.http.GetBytes(ctx, c.source)
	} else {
		data, err = c.fs.ReadFile(c.source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", c.source, err)
	}

	var doc Document
	if err := c.json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", c.source, err)
	}

	if doc.Provider != "" && !strings.EqualFold(doc.Provider, c.provider) {
		return nil, fmt.Errorf("feed %s belongs to provider %q, not %q", c.source, doc.Provider, c.provider)
	}

	return &doc, nil
}
