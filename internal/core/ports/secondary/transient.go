package secondary

import (
	"context"
	"time"
)

// TransientPort is the expiring-cache port backing transients.
type TransientPort interface {
	// Get retrieves a transient value, nil without error when missing or
	// expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a transient with a time-to-live
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single transient
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every transient whose key starts with prefix
	DeleteByPrefix(ctx context.Context, prefix string) error
}
