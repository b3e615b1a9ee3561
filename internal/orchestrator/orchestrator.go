// Package orchestrator runs provider crawlers one at a time and feeds every
// crawled item through redirect detection, validation, identity resolution and
// price recording.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/cache"
	"github.com/feral-file/ff-catalog-ingest/internal/crawler"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/logger"
	"github.com/feral-file/ff-catalog-ingest/internal/metrics"
	"github.com/feral-file/ff-catalog-ingest/internal/notify"
	"github.com/feral-file/ff-catalog-ingest/internal/pricehistory"
	"github.com/feral-file/ff-catalog-ingest/internal/resolver"
	"github.com/feral-file/ff-catalog-ingest/internal/store"
	"github.com/feral-file/ff-catalog-ingest/internal/validation"
)

const (
	DEFAULT_FETCH_RETRIES          = 3
	DEFAULT_RETRY_INITIAL_INTERVAL = 2 * time.Second
	DEFAULT_RETRY_MAX_ELAPSED      = 2 * time.Minute
)

// Config holds the orchestrator settings
type Config struct {
	// RequestDelay is the minimum spacing between two requests to the same provider. Zero disables pacing.
	RequestDelay time.Duration
	// ProviderTimeout bounds the time spent on one provider
	ProviderTimeout time.Duration
	// FetchRetries is the number of retries after a failed fetch
	FetchRetries uint64
	// RetryInitialInterval is the first backoff interval between fetch retries
	RetryInitialInterval time.Duration
	// RetryMaxElapsed bounds the total time spent retrying one fetch
	RetryMaxElapsed time.Duration
	// BatchPrices collects a provider's price observations and writes them in chunks after the provider finishes
	BatchPrices bool
}

// Orchestrator runs ingest passes over a set of provider crawlers
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// Run processes the crawlers strictly one after another. The summary is returned even when the run aborts;
	// the error is non-nil only for a systemic failure or a cancelled context.
	Run(ctx context.Context, crawlers []crawler.Crawler) (*domain.RunSummary, error)
}

type orchestrator struct {
	config     Config
	store      store.Store
	validator  *validation.Validator
	resolver   resolver.Resolver
	recorder   pricehistory.Recorder
	dispatcher notify.Dispatcher
	metrics    *metrics.IngestMetrics
	clock      adapter.Clock
}

// NewOrchestrator creates a new orchestrator. dispatcher and m may be nil.
func NewOrchestrator(
	config Config,
	st store.Store,
	validator *validation.Validator,
	res resolver.Resolver,
	recorder pricehistory.Recorder,
	dispatcher notify.Dispatcher,
	m *metrics.IngestMetrics,
	clock adapter.Clock,
) Orchestrator {
	if config.ProviderTimeout <= 0 {
		config.ProviderTimeout = domain.DEFAULT_PROVIDER_TIMEOUT
	}
	if config.RetryInitialInterval <= 0 {
		config.RetryInitialInterval = DEFAULT_RETRY_INITIAL_INTERVAL
	}
	if config.RetryMaxElapsed <= 0 {
		config.RetryMaxElapsed = DEFAULT_RETRY_MAX_ELAPSED
	}

	return &orchestrator{
		config:     config,
		store:      st,
		validator:  validator,
		resolver:   res,
		recorder:   recorder,
		dispatcher: dispatcher,
		metrics:    m,
		clock:      clock,
	}
}

// Run processes the crawlers sequentially
func (o *orchestrator) Run(ctx context.Context, crawlers []crawler.Crawler) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{
		RunID:     uuid.NewString(),
		Status:    domain.RunStatusCompleted,
		StartedAt: o.clock.Now(),
		Providers: make([]domain.ProviderSummary, 0, len(crawlers)),
	}
	ctx = logger.WithContext(ctx, zap.String("runID", summary.RunID))

	logger.InfoCtx(ctx, "Starting ingest run", zap.Int("providers", len(crawlers)))

	// Lookups never outlive the run
	runCache := cache.NewRunCache()

	var runErr error
	for _, c := range crawlers {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		if err := o.store.Ping(ctx); err != nil {
			runErr = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
			break
		}

		providerSummary, err := o.runProvider(ctx, runCache, c)
		summary.Providers = append(summary.Providers, providerSummary)
		o.metrics.ObserveProvider(providerSummary)

		if err != nil {
			runErr = err
			break
		}
	}
	// an interrupt during the last provider still fails the run
	if runErr == nil {
		runErr = ctx.Err()
	}

	summary.FinishedAt = o.clock.Now()
	if runErr != nil {
		summary.Status = domain.RunStatusFailed
		summary.Error = runErr.Error()
		logger.ErrorCtx(ctx, fmt.Errorf("ingest run aborted: %w", runErr))
	}

	hits, misses := runCache.Stats()
	totals := summary.Totals()
	logger.InfoCtx(ctx, "Finished ingest run",
		zap.String("status", string(summary.Status)),
		zap.Int("fetched", totals.Fetched),
		zap.Int("accepted", totals.Accepted),
		zap.Int("rejected", totals.Rejected),
		zap.Int("errored", totals.Errored),
		zap.Int("newProducts", totals.NewProducts),
		zap.Uint64("performerCacheHits", hits),
		zap.Uint64("performerCacheMisses", misses),
		zap.Duration("duration", totals.Duration))

	o.metrics.ObserveRun(summary)
	if o.dispatcher != nil {
		o.dispatcher.Dispatch(ctx, *summary)
	}

	return summary, runErr
}

// runProvider crawls one provider under its own timeout. The returned error is
// non-nil only for a systemic store failure or a cancelled run; everything else is recorded in the summary.
func (o *orchestrator) runProvider(ctx context.Context, runCache *cache.RunCache, c crawler.Crawler) (domain.ProviderSummary, error) {
	provider := c.Name()
	started := o.clock.Now()
	summary := domain.ProviderSummary{Provider: provider}
	defer func() {
		summary.Duration = o.clock.Now().Sub(started)
	}()

	ctx = logger.WithContext(ctx, zap.String("provider", provider))
	providerCtx, cancel := context.WithTimeout(ctx, o.config.ProviderTimeout)
	defer cancel()

	limiter := o.newLimiter()

	targets, err := c.Targets(providerCtx)
	if err != nil {
		summary.Error = fmt.Sprintf("failed to list targets: %v", err)
		logger.WarnCtx(ctx, "Failed to list crawl targets", zap.Error(err))
		return summary, nil
	}

	logger.InfoCtx(ctx, "Crawling provider", zap.Int("targets", len(targets)))

	var pending []pricehistory.RecordInput
	flushPrices := func() {
		if len(pending) == 0 {
			return
		}
		// Items already resolved keep their prices even when the provider timed out
		result := o.recorder.BatchRecord(context.WithoutCancel(ctx), pending)
		summary.PricesFailed += result.Failed
		pending = nil
	}

	for _, target := range targets {
		if err := providerCtx.Err(); err != nil {
			summary.Error = fmt.Sprintf("provider stopped: %v", err)
			logger.WarnCtx(ctx, "Provider stopped before all targets were crawled", zap.Error(err))
			break
		}

		ext, reason, err := o.crawlItem(providerCtx, limiter, c, target)
		if err != nil {
			summary.Errored++
			logger.WarnCtx(ctx, "Failed to crawl item", zap.Error(err), zap.String("url", target))
			continue
		}
		summary.Fetched++

		if reason != domain.RejectNone {
			summary.Rejected++
			o.metrics.ObserveRejection(provider, reason)
			logger.DebugCtx(ctx, "Rejected item", zap.String("url", target), zap.String("reason", string(reason)))
			continue
		}

		resolution, err := o.resolver.Resolve(providerCtx, runCache, ext)
		if err != nil {
			summary.Errored++
			logger.WarnCtx(ctx, "Failed to resolve item",
				zap.Error(err),
				zap.String("url", target),
				zap.String("providerCode", ext.ProviderCode))

			if errors.Is(err, domain.ErrInvalidExtraction) {
				continue
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				flushPrices()
				return summary, ctxErr
			}
			// A write error is systemic only when the store itself is gone
			if pingErr := o.store.Ping(ctx); pingErr != nil {
				flushPrices()
				return summary, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, pingErr)
			}
			continue
		}

		summary.Accepted++
		if resolution.IsNewProduct {
			summary.NewProducts++
		}

		if ext.Price <= 0 {
			continue
		}
		input := pricehistory.RecordInput{
			ProviderSourceID: resolution.ProviderSourceID,
			Price:            ext.Price,
			SalePrice:        ext.SalePrice,
			DiscountPercent:  ext.DiscountPercent,
		}
		if o.config.BatchPrices {
			pending = append(pending, input)
			continue
		}
		if !o.recorder.Record(providerCtx, input) {
			summary.PricesFailed++
		}
	}

	flushPrices()

	logger.InfoCtx(ctx, "Finished provider",
		zap.Int("fetched", summary.Fetched),
		zap.Int("accepted", summary.Accepted),
		zap.Int("rejected", summary.Rejected),
		zap.Int("errored", summary.Errored),
		zap.Int("newProducts", summary.NewProducts))

	return summary, nil
}

// crawlItem fetches and extracts one target. A non-empty reason means the item was
// rejected; the redirect check runs before extraction so non-product pages are never parsed.
func (o *orchestrator) crawlItem(ctx context.Context, limiter *rate.Limiter, c crawler.Crawler, target string) (*domain.RawExtraction, domain.RejectReason, error) {
	provider := c.Name()

	page, err := o.fetch(ctx, limiter, c, target)
	if err != nil {
		return nil, domain.RejectNone, err
	}

	requestedURL := page.RequestedURL
	if requestedURL == "" {
		requestedURL = target
	}
	if result := o.validator.DetectRedirect(provider, requestedURL, page.FinalURL); !result.Accepted {
		return nil, result.Reason, nil
	}

	ext, err := c.Extract(ctx, page)
	if err != nil {
		return nil, domain.RejectNone, fmt.Errorf("failed to extract: %w", err)
	}
	if ext == nil {
		return nil, domain.RejectNone, fmt.Errorf("crawler returned no extraction")
	}
	if ext.Provider == "" {
		ext.Provider = provider
	}
	if ext.RequestedURL == "" {
		ext.RequestedURL = requestedURL
	}
	if ext.FinalURL == "" {
		ext.FinalURL = page.FinalURL
	}

	if result := o.validator.Validate(ext); !result.Accepted {
		return nil, result.Reason, nil
	}

	return ext, domain.RejectNone, nil
}

// fetch paces and retries a page fetch with exponential backoff
func (o *orchestrator) fetch(ctx context.Context, limiter *rate.Limiter, c crawler.Crawler, target string) (*crawler.Page, error) {
	operation := func() (*crawler.Page, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}

		page, err := c.Fetch(ctx, target)
		if err != nil {
			if crawler.IsPermanent(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if page == nil {
			return nil, backoff.Permanent(fmt.Errorf("crawler returned no page"))
		}
		return page, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.config.RetryInitialInterval
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = o.config.RetryMaxElapsed

	page, err := backoff.RetryWithData(operation, backoff.WithContext(backoff.WithMaxRetries(b, o.config.FetchRetries), ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	return page, nil
}

func (o *orchestrator) newLimiter() *rate.Limiter {
	if o.config.RequestDelay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(o.config.RequestDelay), 1)
}
