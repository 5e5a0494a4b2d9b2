package option

import "context"

// IOptionService exposes named, JSON-encoded settings backed by the
// option store with a transient read-through cache in front of it.
type IOptionService interface {
	Get(ctx context.Context, name string, out any) error
	GetDefault(ctx context.Context, name string, out any, def any) error
	Set(ctx context.Context, name string, value any, autoload bool) error
	Delete(ctx context.Context, name string) error
	LoadAutoload(ctx context.Context) (map[string]string, error)
}
