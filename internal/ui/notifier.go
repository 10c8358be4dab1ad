package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazyvibe/storefront/internal/model"
	"github.com/lazyvibe/storefront/internal/notify"
)

const (
	notifyCooldown = 12 * time.Second
	notifyTimeout  = 10 * time.Second
)

// notifier throttles repeated events before handing them to the dispatcher.
type notifier struct {
	dispatcher *notify.Dispatcher
	cfg        model.NotificationConfig
	lastEvents map[string]time.Time
	now        func() time.Time
}

func newNotifier(d *notify.Dispatcher, cfg model.NotificationConfig) *notifier {
	return &notifier{
		dispatcher: d,
		cfg:        cfg,
		lastEvents: make(map[string]time.Time),
		now:        time.Now,
	}
}

func (n *notifier) enabled() bool {
	return n != nil && n.dispatcher != nil && (n.cfg.Desktop || n.cfg.WebhookURL != "")
}

func (n *notifier) shouldFire(ev notify.Event) bool {
	now := n.now()
	key := string(ev.Type) + "|" + string(ev.Kind) + "|" + ev.ItemID + "|" + ev.Message
	if last, ok := n.lastEvents[key]; ok && now.Sub(last) < notifyCooldown {
		return false
	}
	n.lastEvents[key] = now
	if len(n.lastEvents) > 128 {
		for k, v := range n.lastEvents {
			if now.Sub(v) > notifyCooldown {
				delete(n.lastEvents, k)
			}
		}
	}
	return true
}

// send returns a command delivering ev, or nil when notifications are off or
// the same event fired recently. Delivery errors are logged by the dispatcher.
func (n *notifier) send(ev notify.Event) tea.Cmd {
	if !n.enabled() || !n.shouldFire(ev) {
		return nil
	}
	ev.Timestamp = n.now()
	d, cfg := n.dispatcher, n.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		_ = d.Dispatch(ctx, cfg, ev)
		return nil
	}
}
