package notify

import (
	"context"
	"errors"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-catalog-ingest/internal/domain"
	"github.com/feral-file/ff-catalog-ingest/internal/logger"
)

const (
	// DefaultDeliveryTimeout bounds a single notifier call
	DefaultDeliveryTimeout = 30 * time.Second

	defaultWorkers   = 4
	defaultQueueSize = 64
)

// DispatcherConfig holds the dispatcher settings
type DispatcherConfig struct {
	Workers         int
	QueueSize       int
	DeliveryTimeout time.Duration
}

type dispatcher struct {
	notifiers []Notifier
	pool      pond.Pool
	timeout   time.Duration
}

// NewDispatcher creates a dispatcher delivering to notifiers on a bounded worker pool
func NewDispatcher(cfg DispatcherConfig, notifiers ...Notifier) Dispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}

	return &dispatcher{
		notifiers: notifiers,
		pool:      pond.NewPool(workers, pond.WithQueueSize(queueSize), pond.WithNonBlocking(true)),
		timeout:   timeout,
	}
}

// Dispatch queues one delivery per notifier. A full queue drops the delivery.
func (d *dispatcher) Dispatch(ctx context.Context, summary domain.RunSummary) {
	// Deliveries outlive the run context; only the per-delivery timeout applies
	deliveryCtx := context.WithoutCancel(ctx)

	for _, n := range d.notifiers {
		task := d.pool.Submit(func() {
			d.deliver(deliveryCtx, n, summary)
		})

		// Non-blocking pool reports a full queue through the task
		select {
		case <-task.Done():
			if err := task.Wait(); errors.Is(err, pond.ErrQueueFull) || errors.Is(err, pond.ErrPoolStopped) {
				logger.WarnCtx(ctx, "Dropped run notification",
					zap.Error(err),
					zap.String("notifier", n.Name()),
					zap.String("runID", summary.RunID))
			}
		default:
		}
	}
}

func (d *dispatcher) deliver(ctx context.Context, n Notifier, summary domain.RunSummary) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := n.Notify(ctx, summary); err != nil {
		logger.WarnCtx(ctx, "Failed to deliver run notification",
			zap.Error(err),
			zap.String("notifier", n.Name()),
			zap.String("runID", summary.RunID))
		return
	}

	logger.DebugCtx(ctx, "Delivered run notification",
		zap.String("notifier", n.Name()),
		zap.String("runID", summary.RunID))
}

// Close stops accepting deliveries and waits for queued ones, bounded by ctx
func (d *dispatcher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.pool.StopAndWait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
