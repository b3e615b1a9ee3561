// Package notify delivers run summaries to optional notification sinks.
// Delivery is best effort: a sink failure never fails or blocks a run.
package notify

import (
	"context"
	"time"

	"github.com/feral-file/ff-catalog-ingest/internal/domain"
)

// Event type constants
const (
	// EventTypeRunCompleted is fired when every provider of a run was processed
	EventTypeRunCompleted = "ingest.run.completed"

	// EventTypeRunFailed is fired when a run aborted on a systemic failure
	EventTypeRunFailed = "ingest.run.failed"
)

// RunEvent is the envelope delivered to sinks
type RunEvent struct {
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `json:"event_id"`
	// EventType is the type of event (e.g., "ingest.run.completed")
	EventType string `json:"event_type"`
	// Timestamp is when the event was generated
	Timestamp time.Time `json:"timestamp"`
	// Data is the run summary
	Data domain.RunSummary `json:"data"`
}

// EventType maps a run status to its event type
func EventType(status domain.RunStatus) string {
	if status == domain.RunStatusFailed {
		return EventTypeRunFailed
	}
	return EventTypeRunCompleted
}

// Notifier delivers a run summary to one sink
//
//go:generate mockgen -source=notify.go -destination=../mocks/notify.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	// Name identifies the sink in logs
	Name() string

	// Notify delivers the summary
	Notify(ctx context.Context, summary domain.RunSummary) error
}

// Dispatcher fans run summaries out to notifiers without blocking the caller
//
//go:generate mockgen -source=notify.go -destination=../mocks/notify.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Dispatch queues the summary for every notifier and returns immediately
	Dispatch(ctx context.Context, summary domain.RunSummary)

	// Close waits for queued deliveries, bounded by ctx
	Close(ctx context.Context) error
}
