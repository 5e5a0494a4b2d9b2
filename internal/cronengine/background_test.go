package cronengine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraypress/contentquery/internal/config"
	"github.com/arraypress/contentquery/internal/domain"
)

type mockEventRepo struct {
	mu       sync.Mutex
	saved    []*domain.ScheduledEvent
	statuses map[uuid.UUID]domain.EventStatus
	due      []*domain.ScheduledEvent
	byHook   map[string]*domain.ScheduledEvent
	purged   int64
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		statuses: map[uuid.UUID]domain.EventStatus{},
		byHook:   map[string]*domain.ScheduledEvent{},
	}
}

func (m *mockEventRepo) SaveEvent(_ context.Context, event *domain.ScheduledEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, event)
	return nil
}

func (m *mockEventRepo) GetDueEvents(_ context.Context, _ time.Time, _ int) ([]*domain.ScheduledEvent, error) {
	return m.due, nil
}

func (m *mockEventRepo) GetEventByHook(_ context.Context, hook string) (*domain.ScheduledEvent, error) {
	return m.byHook[hook], nil
}

func (m *mockEventRepo) UpdateEventStatus(_ context.Context, id uuid.UUID, status domain.EventStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[id] = status
	return nil
}

func (m *mockEventRepo) PurgeCompleted(_ context.Context, _ time.Time) (int64, error) {
	return m.purged, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func newTestEngine(repo *mockEventRepo) *CronEngine {
	cfg := &config.CronCfg{
		FireInterval:  time.Second,
		PurgeInterval: time.Hour,
		PurgeAge:      24 * time.Hour,
		BatchSize:     100,
	}
	return NewCronEngine(cfg, repo, nopLogger{})
}

func TestFireDueEvents(t *testing.T) {
	t.Run("one-shot completes after its callback runs", func(t *testing.T) {
		repo := newMockEventRepo()
		event := domain.NewScheduledEvent("cache_flush", nil, time.Now().Add(-time.Minute))
		repo.due = []*domain.ScheduledEvent{event}

		engine := newTestEngine(repo)
		var fired bool
		engine.RegisterCallback("cache_flush", func(context.Context, *domain.ScheduledEvent) error {
			fired = true
			return nil
		})

		engine.fireDueEvents(context.Background())

		assert.True(t, fired)
		assert.Equal(t, domain.EventStatusCompleted, repo.statuses[event.ID])
	})

	t.Run("callback error marks the event failed", func(t *testing.T) {
		repo := newMockEventRepo()
		event := domain.NewScheduledEvent("cache_flush", nil, time.Now().Add(-time.Minute))
		repo.due = []*domain.ScheduledEvent{event}

		engine := newTestEngine(repo)
		engine.RegisterCallback("cache_flush", func(context.Context, *domain.ScheduledEvent) error {
			return errors.New("boom")
		})

		engine.fireDueEvents(context.Background())
		assert.Equal(t, domain.EventStatusFailed, repo.statuses[event.ID])
	})

	t.Run("unregistered hook marks the event failed", func(t *testing.T) {
		repo := newMockEventRepo()
		event := domain.NewScheduledEvent("unknown_hook", nil, time.Now().Add(-time.Minute))
		repo.due = []*domain.ScheduledEvent{event}

		engine := newTestEngine(repo)
		engine.fireDueEvents(context.Background())
		assert.Equal(t, domain.EventStatusFailed, repo.statuses[event.ID])
	})

	t.Run("recurring event is rescheduled forward of now", func(t *testing.T) {
		repo := newMockEventRepo()
		event := domain.NewRecurringEvent("purge", nil, time.Now().Add(-10*time.Minute), time.Minute)
		repo.due = []*domain.ScheduledEvent{event}

		engine := newTestEngine(repo)
		engine.RegisterCallback("purge", func(context.Context, *domain.ScheduledEvent) error {
			return nil
		})

		engine.fireDueEvents(context.Background())

		require.Len(t, repo.saved, 1)
		saved := repo.saved[0]
		assert.Equal(t, domain.EventStatusPending, saved.Status)
		assert.True(t, saved.ScheduledAt.After(time.Now().Add(-time.Second)))
		require.NotNil(t, saved.LastRunAt)
	})
}

func TestSchedule(t *testing.T) {
	t.Run("single schedule is deduplicated per hook and time", func(t *testing.T) {
		repo := newMockEventRepo()
		engine := newTestEngine(repo)

		at := time.Now().Add(time.Hour)
		require.NoError(t, engine.ScheduleSingle(context.Background(), "digest", nil, at))
		require.Len(t, repo.saved, 1)

		repo.byHook["digest"] = repo.saved[0]
		require.NoError(t, engine.ScheduleSingle(context.Background(), "digest", nil, at))
		assert.Len(t, repo.saved, 1)
	})

	t.Run("recurring schedule keeps the existing recurrence", func(t *testing.T) {
		repo := newMockEventRepo()
		engine := newTestEngine(repo)

		at := time.Now().Add(time.Minute)
		require.NoError(t, engine.ScheduleRecurring(context.Background(), "purge", nil, at, time.Hour))
		require.Len(t, repo.saved, 1)

		repo.byHook["purge"] = repo.saved[0]
		require.NoError(t, engine.ScheduleRecurring(context.Background(), "purge", nil, at, time.Minute))
		assert.Len(t, repo.saved, 1)
	})
}
