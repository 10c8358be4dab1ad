package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/storefront/internal/model"
)

func TestDispatch_Webhook(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDispatcher()
	err := d.Dispatch(context.Background(), model.NotificationConfig{WebhookURL: srv.URL}, Event{
		Kind:     model.KindCart,
		ItemID:   "p1",
		ItemName: "ThinkPad",
		Type:     EventItemAdded,
		Message:  "\x1b[1mThinkPad\x1b[0m added to cart",
	})
	require.NoError(t, err)

	assert.Equal(t, "cart", got["kind"])
	assert.Equal(t, "p1", got["itemId"])
	assert.Equal(t, "item_added", got["event"])
	assert.Equal(t, "ThinkPad", got["title"])
	assert.Equal(t, "ThinkPad added to cart", got["message"])
}

func TestDispatch_WebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewDispatcher().Dispatch(context.Background(), model.NotificationConfig{WebhookURL: srv.URL}, Event{Type: EventError})
	assert.Error(t, err)
}

func TestDispatch_DesktopMessageCapped(t *testing.T) {
	d := NewDispatcher()
	var title, message string
	d.desktop = func(ti, m string) error {
		title, message = ti, m
		return nil
	}

	err := d.Dispatch(context.Background(), model.NotificationConfig{Desktop: true}, Event{
		Type:    EventCheckoutReady,
		Message: strings.Repeat("ы", 900),
	})
	require.NoError(t, err)

	assert.Equal(t, "Storefront", title)
	assert.Equal(t, maxMessageRunes+3, len([]rune(message)))
	assert.True(t, strings.HasSuffix(message, "..."))
}

func TestDispatch_DisabledChannels(t *testing.T) {
	d := NewDispatcher()
	d.desktop = func(string, string) error {
		return errors.New("should not be called")
	}

	err := d.Dispatch(context.Background(), model.NotificationConfig{}, Event{Type: EventItemAlreadyPresent})
	assert.NoError(t, err)
}
