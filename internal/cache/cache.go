// Package cache is the device-local key-value store behind the client. It
// holds three records: the signed-in identity, the user profile and the most
// recent meal plan. Values are opaque strings; Records adds the typed view.
package cache

import "context"

// Store is a persistent key-value store. Implementations must report a
// missing key as ok == false with a nil error.
type Store interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)

	// Location is a non-sensitive description of where the data lives
	Location() string
}
