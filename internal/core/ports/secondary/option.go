package secondary

import "context"

// OptionStore is the options-table port. Values cross the boundary
// JSON-encoded; the service layer owns (de)serialization.
type OptionStore interface {
	// Get retrieves a raw option value, nil when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set upserts an option value
	Set(ctx context.Context, key string, value []byte, autoload bool) error

	// Delete removes an option; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error

	// GetAutoload retrieves all autoloaded options in one round trip
	GetAutoload(ctx context.Context) (map[string][]byte, error)
}
