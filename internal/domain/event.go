package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus represents the status of a scheduled event
type EventStatus string

const (
	EventStatusPending   EventStatus = "PENDING"
	EventStatusRunning   EventStatus = "RUNNING"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusFailed    EventStatus = "FAILED"
)

// ScheduledEvent represents a named hook fired at a point in time,
// optionally recurring.
type ScheduledEvent struct {
	ID            uuid.UUID              `db:"id"`
	Hook          string                 `db:"hook"`
	Payload       map[string]interface{} `db:"payload"`
	Status        EventStatus            `db:"status"`
	ScheduledAt   time.Time              `db:"scheduled_at"`
	RecurrenceSec int                    `db:"recurrence_seconds"`
	LastRunAt     *time.Time             `db:"last_run_at"`
	CreatedAt     time.Time              `db:"created_at"`
}

// Recurring reports whether the event reschedules itself after firing.
func (e *ScheduledEvent) Recurring() bool {
	return e.RecurrenceSec > 0
}

type ScheduledEventTable struct {
	ID            string
	Hook          string
	Payload       string
	Status        string
	ScheduledAt   string
	RecurrenceSec string
	LastRunAt     string
	CreatedAt     string
}

func GetScheduledEventTable() ScheduledEventTable {
	return ScheduledEventTable{
		ID:            "id",
		Hook:          "hook",
		Payload:       "payload",
		Status:        "status",
		ScheduledAt:   "scheduled_at",
		RecurrenceSec: "recurrence_seconds",
		LastRunAt:     "last_run_at",
		CreatedAt:     "created_at",
	}
}

func (ScheduledEventTable) TableName() string {
	return "scheduled_events"
}

// NewScheduledEvent creates a pending one-shot event
func NewScheduledEvent(hook string, payload map[string]interface{}, at time.Time) *ScheduledEvent {
	return &ScheduledEvent{
		ID:          uuid.New(),
		Hook:        hook,
		Payload:     payload,
		Status:      EventStatusPending,
		ScheduledAt: at,
		CreatedAt:   time.Now(),
	}
}

// NewRecurringEvent creates a pending event that refires every interval
func NewRecurringEvent(hook string, payload map[string]interface{}, at time.Time, interval time.Duration) *ScheduledEvent {
	ev := NewScheduledEvent(hook, payload, at)
	ev.RecurrenceSec = int(interval / time.Second)
	return ev
}
