package eventrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/domain"
)

var _ secondary.EventRepository = &eventRepo{}

var eventsTbl = domain.GetScheduledEventTable()

var eventColumns = strings.Join([]string{
	eventsTbl.ID,
	eventsTbl.Hook,
	eventsTbl.Payload,
	eventsTbl.Status,
	eventsTbl.ScheduledAt,
	eventsTbl.RecurrenceSec,
	eventsTbl.LastRunAt,
	eventsTbl.CreatedAt,
}, ", ")

type eventRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

func New(db *sqlx.DB, logger primary.Logger) secondary.EventRepository {
	return &eventRepo{
		db:     db,
		logger: logger,
	}
}

func (r *eventRepo) SaveEvent(ctx context.Context, event *domain.ScheduledEvent) error {
	payloadJSON, err := json.Marshal(event.Payload)
	if err != nil {
		r.logger.Error("Failed to marshal event payload", "error", err)
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (%s) DO UPDATE SET
			%[4]s = EXCLUDED.%[4]s,
			%[5]s = EXCLUDED.%[5]s,
			%[6]s = EXCLUDED.%[6]s
	`, eventsTbl.TableName(), eventColumns, eventsTbl.ID, eventsTbl.Status, eventsTbl.ScheduledAt, eventsTbl.LastRunAt)
	_, err = r.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.Hook,
		payloadJSON,
		event.Status,
		event.ScheduledAt,
		event.RecurrenceSec,
		event.LastRunAt,
		event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save scheduled event", "error", err)
		return fmt.Errorf("failed to save scheduled event: %w", err)
	}
	return nil
}

func (r *eventRepo) GetDueEvents(ctx context.Context, now time.Time, limit int) ([]*domain.ScheduledEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %[4]s <= $2
		ORDER BY %[4]s ASC
		LIMIT $3
	`, eventColumns, eventsTbl.TableName(), eventsTbl.Status, eventsTbl.ScheduledAt)
	rows, err := r.db.QueryxContext(ctx, query, domain.EventStatusPending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due events: %w", err)
	}
	defer rows.Close()

	var events []*domain.ScheduledEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.logger.Warn("Skipping unreadable event row", "error", err)
			continue
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetEventByHook(ctx context.Context, hook string) (*domain.ScheduledEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s ASC
		LIMIT 1
	`, eventColumns, eventsTbl.TableName(), eventsTbl.Hook, eventsTbl.Status, eventsTbl.ScheduledAt)
	rows, err := r.db.QueryxContext(ctx, query, hook, domain.EventStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanEvent(rows)
}

func (r *eventRepo) UpdateEventStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, eventsTbl.TableName(), eventsTbl.Status, eventsTbl.ID)
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("event not found: %s", id)
	}
	return nil
}

func (r *eventRepo) PurgeCompleted(ctx context.Context, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = 0 AND %s < $2`,
		eventsTbl.TableName(), eventsTbl.Status, eventsTbl.RecurrenceSec, eventsTbl.ScheduledAt)
	result, err := r.db.ExecContext(ctx, query, domain.EventStatusCompleted, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge events: %w", err)
	}
	return result.RowsAffected()
}

func scanEvent(rows *sqlx.Rows) (*domain.ScheduledEvent, error) {
	var (
		event       domain.ScheduledEvent
		payloadJSON []byte
		lastRunAt   sql.NullTime
	)
	err := rows.Scan(
		&event.ID,
		&event.Hook,
		&payloadJSON,
		&event.Status,
		&event.ScheduledAt,
		&event.RecurrenceSec,
		&lastRunAt,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastRunAt.Valid {
		event.LastRunAt = &lastRunAt.Time
	}
	if len(payloadJSON) > 0 {
		if err := json.Unmarshal(payloadJSON, &event.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event payload: %w", err)
		}
	}
	return &event, nil
}
