package scheduler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-catalog-ingest/internal/crawler"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/metrics"
	"github.com/feral-file/ff-catalog-ingest/internal/mocks"
	"github.com/feral-file/ff-catalog-ingest/internal/scheduler"
)

// testSchedulerMocks contains all the mocks needed for testing the scheduler
type testSchedulerMocks struct {
	ctrl         *gomock.Controller
	orchestrator *mocks.MockOrchestrator
	clock        *mocks.MockClock
	crawlers     []crawler.Crawler
}

func setupTestScheduler(t *testing.T, cfg *scheduler.IngestSchedulerConfig) (scheduler.Scheduler, *testSchedulerMocks) {
	ctrl := gomock.NewController(t)
	tm := &testSchedulerMocks{
		ctrl:         ctrl,
		orchestrator: mocks.NewMockOrchestrator(ctrl),
		clock:        mocks.NewMockClock(ctrl),
		crawlers:     []crawler.Crawler{mocks.NewMockCrawler(ctrl)},
	}

	s := scheduler.NewIngestScheduler(cfg, tm.orchestrator, tm.crawlers, metrics.New("test"), tm.clock)
	return s, tm
}

// afterSoon returns a channel that fires after a brief delay
func afterSoon(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	go func() {
		time.Sleep(20 * time.Millisecond)
		ch <- time.Now()
	}()
	return ch
}

func TestIngestScheduler_Name(t *testing.T) {
	s, _ := setupTestScheduler(t, &scheduler.IngestSchedulerConfig{})
	assert.Equal(t, "ingest-scheduler", s.Name())
}

func TestIngestScheduler_RunsUntilStopped(t *testing.T) {
	s, tm := setupTestScheduler(t, &scheduler.IngestSchedulerConfig{Interval: time.Hour})
	ctx := context.Background()

	var runs atomic.Int32
	tm.orchestrator.EXPECT().Run(gomock.Any(), tm.crawlers).DoAndReturn(
		func(context.Context, []crawler.Crawler) (*domain.RunSummary, error) {
			runs.Add(1)
			return &domain.RunSummary{Status: domain.RunStatusCompleted}, nil
		}).MinTimes(1)
	tm.clock.EXPECT().After(time.Hour).DoAndReturn(afterSoon).AnyTimes()

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = s.Stop(ctx)
	}()

	require.NoError(t, s.Start(ctx))
	assert.GreaterOrEqual(t, runs.Load(), int32(1))
}

func TestIngestScheduler_ContinuesAfterFailedRun(t *testing.T) {
	s, tm := setupTestScheduler(t, &scheduler.IngestSchedulerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		tm.orchestrator.EXPECT().Run(gomock.Any(), gomock.Any()).
			Return(&domain.RunSummary{Status: domain.RunStatusFailed}, domain.ErrStoreUnavailable),
		tm.orchestrator.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, []crawler.Crawler) (*domain.RunSummary, error) {
				cancel()
				return &domain.RunSummary{Status: domain.RunStatusCompleted}, nil
			}),
	)
	tm.clock.EXPECT().After(scheduler.DEFAULT_RUN_INTERVAL).DoAndReturn(afterSoon).AnyTimes()

	require.NoError(t, s.Start(ctx))
}

func TestIngestScheduler_StopBeforeStart(t *testing.T) {
	s, _ := setupTestScheduler(t, &scheduler.IngestSchedulerConfig{})
	require.NoError(t, s.Stop(context.Background()))
}

func TestIngestScheduler_DoubleStart(t *testing.T) {
	s, tm := setupTestScheduler(t, &scheduler.IngestSchedulerConfig{})
	ctx := context.Background()

	tm.orchestrator.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.RunSummary{}, nil).AnyTimes()
	tm.clock.EXPECT().After(gomock.Any()).DoAndReturn(afterSoon).AnyTimes()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	// Give first start time to begin
	time.Sleep(50 * time.Millisecond)

	err := s.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	_ = s.Stop(ctx)
	<-errChan
}

func TestIngestScheduler_RunOncePushesMetrics(t *testing.T) {
	var pushes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s, tm := setupTestScheduler(t, &scheduler.IngestSchedulerConfig{MetricsPushURL: server.URL})
	tm.orchestrator.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.RunSummary{Status: domain.RunStatusFailed}, domain.ErrStoreUnavailable)

	summary, err := s.RunOnce(context.Background())
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.Equal(t, domain.RunStatusFailed, summary.Status)
	assert.Equal(t, int32(1), pushes.Load())
}
