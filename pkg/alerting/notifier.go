package alerting

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Notifier delivers alert events to an external system. Implementations must
// be safe for concurrent use. Delivery failures are non-fatal: the alert is
// considered sent once decided, so a flaky transport cannot cause alert storms.
type Notifier interface {
	// Name returns the notifier identifier for logging.
	Name() string
	SendAlert(ctx context.Context, event AlertEvent) error
}

// LogNotifier writes alerts to the application log.
type LogNotifier struct {
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) SendAlert(ctx context.Context, event AlertEvent) error {
	entry := log.WithFields(log.Fields{
		"team":        event.TeamUid,
		"utilization": event.Utilization,
	})
	switch event.Level {
	case LevelCritical:
		entry.Errorf("budget alert: team %q reached %d%% of its budget", event.TeamName, event.Utilization)
	default:
		entry.Warnf("budget alert: team %q reached %d%% of its budget", event.TeamName, event.Utilization)
	}
	return nil
}

// WebhookNotifier sends alerts to a generic HTTP webhook.
// If secret is non-empty, requests are signed with HMAC-SHA256.
type WebhookNotifier struct {
	url    string
	secret string
	client *http.Client
}

func NewWebhookNotifier(url, secret string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		secret: secret,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *WebhookNotifier) Name() string { return "webhook" }

type webhookPayload struct {
	Event       string `json:"event"`
	TeamUid     string `json:"teamUid"`
	TeamName    string `json:"teamName"`
	Level       string `json:"level"`
	Utilization int    `json:"utilization"`
	Timestamp   string `json:"timestamp"`
}

func (n *WebhookNotifier) SendAlert(ctx context.Context, event AlertEvent) error {
	payload := webhookPayload{
		Event:       "budget_alert",
		TeamUid:     event.TeamUid,
		TeamName:    event.TeamName,
		Level:       string(event.Level),
		Utilization: event.Utilization,
		Timestamp:   event.Timestamp.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if n.secret != "" {
		mac := hmac.New(sha256.New, []byte(n.secret))
		mac.Write(body)
		req.Header.Set("X-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
