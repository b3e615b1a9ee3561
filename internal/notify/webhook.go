package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/domain"
)

const webhookUserAgent = "FF-Catalog-Ingest-Webhook/1.0"

type webhookNotifier struct {
	url    string
	secret string
	http   adapter.HTTPClient
	json   adapter.JSON
	clock  adapter.Clock
}

// NewWebhookNotifier creates a notifier that POSTs signed run events to url
func NewWebhookNotifier(url, secret string, httpClient adapter.HTTPClient, json adapter.JSON, clock adapter.Clock) Notifier {
	return &webhookNotifier{
		url:    url,
		secret: secret,
		http:   httpClient,
		json:   json,
		clock:  clock,
	}
}

func (n *webhookNotifier) Name() string {
	return "webhook"
}

// Notify signs the run event and posts it. Transient HTTP failures are retried by the HTTP adapter.
func (n *webhookNotifier) Notify(ctx context.Context, summary domain.RunSummary) error {
	now := n.clock.Now()
	event := RunEvent{
		EventID:   ulid.MustNewDefault(now).String(),
		EventType: EventType(summary.Status),
		Timestamp: now.UTC(),
		Data:      summary,
	}

	payload, err := n.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	timestamp := now.Unix()
	headers := map[string]string{
		"X-Webhook-Signature":  Sign(n.secret, timestamp, event.EventID, payload),
		"X-Webhook-Event-ID":   event.EventID,
		"X-Webhook-Event-Type": event.EventType,
		"X-Webhook-Timestamp":  strconv.FormatInt(timestamp, 10),
		"User-Agent":           webhookUserAgent,
	}

	if _, err := n.http.PostJSON(ctx, n.url, payload, headers); err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}

	return nil
}
