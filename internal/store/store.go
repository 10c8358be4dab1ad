// Package store provides durable key/value storage for the storefront.
//
// Values are opaque strings, the way browser local storage holds them. Callers
// own the encoding of what they put in.
package store

import "errors"

var (
	// ErrQuotaExceeded is returned when a write would exceed the storage quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrClosed is returned when the store has been closed.
	ErrClosed = errors.New("store closed")
)

// KeyValue defines durable key/value persistence.
type KeyValue interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool, error)
	// Set replaces the value stored under key.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases any resources held by the store.
	Close() error
}

// usage returns the number of bytes the entries occupy, counting keys and values.
func usage(entries map[string]string) int64 {
	var n int64
	for k, v := range entries {
		n += int64(len(k) + len(v))
	}
	return n
}

// fits reports whether setting key to value keeps entries within quota.
// A quota of zero or less means unlimited.
func fits(entries map[string]string, quota int64, key, value string) bool {
	if quota <= 0 {
		return true
	}
	n := usage(entries)
	if old, ok := entries[key]; ok {
		n -= int64(len(key) + len(old))
	}
	return n+int64(len(key)+len(value)) <= quota
}
