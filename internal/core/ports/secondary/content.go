package secondary

import (
	"context"

	"github.com/google/uuid"

	"github.com/arraypress/contentquery/internal/domain"
)

type ContentPort interface {
	// Save inserts or updates a content item
	Save(ctx context.Context, item *domain.Content) error

	// Get retrieves a content item by ID
	Get(ctx context.Context, id uuid.UUID) (*domain.Content, error)

	// Query runs a finalized builder query and returns the matching items
	// plus the unpaged total
	Query(ctx context.Context, q domain.ContentQuery) (*domain.ContentResult, error)

	// SetMeta upserts a meta value for a content item
	SetMeta(ctx context.Context, id uuid.UUID, key, value string) error

	// Delete removes a content item and its meta rows
	Delete(ctx context.Context, id uuid.UUID) error
}
