// Package scheduler runs the ingest orchestrator as a long-running background job.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/crawler"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/logger"
	"github.com/feral-file/ff-catalog-ingest/internal/metrics"
	"github.com/feral-file/ff-catalog-ingest/internal/orchestrator"
)

const (
	DEFAULT_RUN_INTERVAL = 6 * time.Hour // Time to sleep between ingest runs
	DEFAULT_METRICS_JOB  = "catalog_ingest"
)

// Scheduler is a long-running background task that triggers ingest runs
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=Scheduler=MockScheduler
type Scheduler interface {
	// Start begins the scheduler's main loop
	// This is a blocking call that runs until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop gracefully stops the scheduler
	// This waits for an in-progress run to finish, bounded by ctx
	Stop(ctx context.Context) error

	// RunOnce performs a single ingest run outside the loop
	RunOnce(ctx context.Context) (*domain.RunSummary, error)

	// Name returns the scheduler's name for logging and identification
	Name() string
}

// IngestSchedulerConfig holds configuration for the ingest scheduler
type IngestSchedulerConfig struct {
	Interval       time.Duration // Time between the end of one run and the start of the next
	MetricsPushURL string        // Pushgateway URL; empty disables pushing
	MetricsJob     string        // Pushgateway job name
}

type ingestScheduler struct {
	config       *IngestSchedulerConfig
	orchestrator orchestrator.Orchestrator
	crawlers     []crawler.Crawler
	metrics      *metrics.IngestMetrics
	clock        adapter.Clock
	running      atomic.Bool
	stopChan     chan struct{}
	stoppedCh    chan struct{}
}

// NewIngestScheduler creates a new ingest scheduler
func NewIngestScheduler(
	config *IngestSchedulerConfig,
	o orchestrator.Orchestrator,
	crawlers []crawler.Crawler,
	m *metrics.IngestMetrics,
	clock adapter.Clock,
) Scheduler {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_RUN_INTERVAL
	}
	if config.MetricsJob == "" {
		config.MetricsJob = DEFAULT_METRICS_JOB
	}

	return &ingestScheduler{
		config:       config,
		orchestrator: o,
		crawlers:     crawlers,
		metrics:      m,
		clock:        clock,
		stopChan:     make(chan struct{}),
		stoppedCh:    make(chan struct{}),
	}
}

// Name returns the scheduler's name
func (s *ingestScheduler) Name() string {
	return "ingest-scheduler"
}

// Start runs ingest passes until the context is canceled or Stop is called
func (s *ingestScheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("scheduler already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting ingest scheduler",
		zap.Int("providers", len(s.crawlers)),
		zap.Duration("interval", s.config.Interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Ingest scheduler stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Ingest scheduler stop requested")
			return nil
		default:
			if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}

			if !s.sleep(ctx, s.config.Interval) {
				continue // the select above decides why
			}
		}
	}
}

// RunOnce performs one ingest run and pushes its metrics
func (s *ingestScheduler) RunOnce(ctx context.Context) (*domain.RunSummary, error) {
	summary, err := s.orchestrator.Run(ctx, s.crawlers)

	if s.config.MetricsPushURL != "" {
		// push even for an aborted run so the failure is visible
		if pushErr := s.metrics.Push(context.WithoutCancel(ctx), s.config.MetricsPushURL, s.config.MetricsJob); pushErr != nil {
			logger.WarnCtx(ctx, "Failed to push metrics", zap.Error(pushErr), zap.String("url", s.config.MetricsPushURL))
		}
	}

	return summary, err
}

// Stop gracefully stops the scheduler with timeout support
func (s *ingestScheduler) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping ingest scheduler")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Ingest scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Ingest scheduler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// sleep waits for duration; false means it was interrupted
func (s *ingestScheduler) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
