// Package notify delivers cart and checkout notifications to the desktop and
// to an optional webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"github.com/lazyvibe/storefront/internal/model"
)

// EventType represents a notification event type.
type EventType string

const (
	EventItemAdded          EventType = "item_added"
	EventItemAlreadyPresent EventType = "item_already_present"
	EventCheckoutReady      EventType = "checkout_ready"
	EventError              EventType = "error"
)

const maxMessageRunes = 800

// Event describes a notification event.
type Event struct {
	Kind      model.Kind
	ItemID    string
	ItemName  string
	Type      EventType
	Title     string
	Message   string
	Timestamp time.Time
}

// Dispatcher sends notifications to configured channels.
type Dispatcher struct {
	client  *http.Client
	logger  *zap.Logger
	desktop func(title, message string) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a Dispatcher with sensible defaults.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: zap.NewNop(),
		desktop: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch sends a notification event using the given config. Delivery
// failures are logged and returned; the first one wins.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg model.NotificationConfig, event Event) error {
	title := strings.TrimSpace(ansi.Strip(event.Title))
	if title == "" {
		if event.ItemName != "" {
			title = event.ItemName
		} else {
			title = "Storefront"
		}
	}
	message := strings.TrimSpace(ansi.Strip(event.Message))
	if message == "" {
		message = string(event.Type)
	}
	if r := []rune(message); len(r) > maxMessageRunes {
		message = string(r[:maxMessageRunes]) + "..."
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	var firstErr error
	if cfg.Desktop {
		if err := d.desktop(title, message); err != nil {
			d.logger.Warn("desktop notification failed", zap.Error(err))
			firstErr = err
		}
	}

	if cfg.WebhookURL != "" {
		if err := d.postWebhook(ctx, cfg.WebhookURL, title, message, event); err != nil {
			d.logger.Warn("webhook notification failed",
				zap.String("url", cfg.WebhookURL),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (d *Dispatcher) postWebhook(ctx context.Context, url, title, message string, event Event) error {
	payload := map[string]any{
		"kind":      event.Kind,
		"itemId":    event.ItemID,
		"item":      event.ItemName,
		"event":     event.Type,
		"title":     title,
		"message":   message,
		"timestamp": event.Timestamp.Unix(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
