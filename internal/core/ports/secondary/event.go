package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arraypress/contentquery/internal/domain"
)

type EventRepository interface {
	// SaveEvent inserts or updates a scheduled event
	SaveEvent(ctx context.Context, event *domain.ScheduledEvent) error

	// GetDueEvents retrieves pending events scheduled at or before now
	GetDueEvents(ctx context.Context, now time.Time, limit int) ([]*domain.ScheduledEvent, error)

	// GetEventByHook retrieves the next pending event for a hook, nil when
	// none is scheduled
	GetEventByHook(ctx context.Context, hook string) (*domain.ScheduledEvent, error)

	// UpdateEventStatus updates an event's status
	UpdateEventStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error

	// PurgeCompleted deletes completed one-shot events older than cutoff
	PurgeCompleted(ctx context.Context, cutoff time.Time) (int64, error)
}
