package notify

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
)

// DefaultSubjectPrefix is the subject prefix run summaries are published under
const DefaultSubjectPrefix = "ingest.runs"

type natsNotifier struct {
	js            adapter.JetStream
	json          adapter.JSON
	subjectPrefix string
}

// NewNATSNotifier creates a notifier publishing summaries to "<prefix>.<status>"
func NewNATSNotifier(js adapter.JetStream, json adapter.JSON, subjectPrefix string) Notifier {
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}
	return &natsNotifier{
		js:            js,
		json:          json,
		subjectPrefix: subjectPrefix,
	}
}

func (n *natsNotifier) Name() string {
	return "nats"
}

// Subject returns the subject a summary with status is published to
func (n *natsNotifier) Subject(status domain.RunStatus) string {
	return fmt.Sprintf("%s.%s", n.subjectPrefix, status)
}

// Notify publishes the summary and waits for the stream acknowledgement
func (n *natsNotifier) Notify(ctx context.Context, summary domain.RunSummary) error {
	data, err := n.json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	if _, err := n.js.Publish(ctx, n.Subject(summary.Status), data); err != nil {
		return fmt.Errorf("failed to publish run summary: %w", err)
	}

	return nil
}
