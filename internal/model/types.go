// Package model defines core data structures for the storefront.
package model

// Kind names a partition of the collection store.
type Kind string

const (
	// KindCart is the shopping cart.
	KindCart Kind = "cart"
	// KindComparison is the product comparison list.
	KindComparison Kind = "comparison"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	// Desktop enables desktop notifications via system APIs.
	Desktop bool `json:"desktop"`
	// WebhookURL is the optional URL to send webhook notifications.
	WebhookURL string `json:"webhook_url,omitempty"`
}
