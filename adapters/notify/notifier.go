package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pulseboard/internal"
	"pulseboard/models"
	"pulseboard/ports"
)

// LogNotifier writes alerts to the application log. It is the default
// channel when no webhook is configured.
type LogNotifier struct {
	logger *internal.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(logger *internal.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify records the alert in the log
func (n *LogNotifier) Notify(_ context.Context, alert *models.Alert) error {
	n.logger.Info("alert [%s/%s] %s", alert.Severity, alert.Type, alert.Title)
	return nil
}

// WebhookNotifier POSTs each alert as JSON to a configured endpoint.
// Delivery is best-effort; the caller treats failures as log-only events.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier for the given endpoint
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Notify delivers the alert payload to the webhook endpoint
func (n *WebhookNotifier) Notify(ctx context.Context, alert *models.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encoding alert payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

var (
	_ ports.Notifier = (*LogNotifier)(nil)
	_ ports.Notifier = (*WebhookNotifier)(nil)
)
