package cronengine

import (
	"context"
	"sync"
	"time"

	"github.com/arraypress/contentquery/internal/config"
	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/domain"
)

// Callback handles one fired event. A non-nil error marks the event FAILED.
type Callback func(ctx context.Context, event *domain.ScheduledEvent) error

type CronEngine struct {
	cronCfg   *config.CronCfg
	eventRepo secondary.EventRepository
	logger    primary.Logger

	mu        sync.RWMutex
	callbacks map[string]Callback
}

func NewCronEngine(
	cronCfg *config.CronCfg,
	eventRepo secondary.EventRepository,
	logger primary.Logger,
) *CronEngine {
	return &CronEngine{
		cronCfg:   cronCfg,
		eventRepo: eventRepo,
		logger:    logger,
		callbacks: make(map[string]Callback),
	}
}

// RegisterCallback binds a hook name to its handler. Events firing on an
// unregistered hook are marked FAILED.
func (e *CronEngine) RegisterCallback(hook string, fn Callback) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks[hook] = fn
}

// ScheduleSingle persists a one-shot event unless the hook already has a
// pending one at the same time.
func (e *CronEngine) ScheduleSingle(ctx context.Context, hook string, payload map[string]interface{}, at time.Time) error {
	existing, err := e.eventRepo.GetEventByHook(ctx, hook)
	if err != nil {
		return err
	}
	if existing != nil && existing.ScheduledAt.Equal(at) {
		return nil
	}
	return e.eventRepo.SaveEvent(ctx, domain.NewScheduledEvent(hook, payload, at))
}

// ScheduleRecurring persists an event that refires every interval.
func (e *CronEngine) ScheduleRecurring(ctx context.Context, hook string, payload map[string]interface{}, at time.Time, interval time.Duration) error {
	existing, err := e.eventRepo.GetEventByHook(ctx, hook)
	if err != nil {
		return err
	}
	if existing != nil && existing.Recurring() {
		return nil
	}
	return e.eventRepo.SaveEvent(ctx, domain.NewRecurringEvent(hook, payload, at, interval))
}

// StartCronEngine runs the fire and purge loops until the context is
// cancelled.
func (e *CronEngine) StartCronEngine(ctx context.Context) {
	fireTicker := time.NewTicker(e.cronCfg.FireInterval)
	go func() {
		defer fireTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-fireTicker.C:
				e.fireDueEvents(ctx)
			}
		}
	}()

	purgeTicker := time.NewTicker(e.cronCfg.PurgeInterval)
	go func() {
		defer purgeTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-purgeTicker.C:
				e.purgeCompleted(ctx)
			}
		}
	}()
}

func (e *CronEngine) fireDueEvents(ctx context.Context) {
	var workerSize int = 2
	dueEvents, err := e.eventRepo.GetDueEvents(ctx, time.Now(), e.cronCfg.BatchSize)
	if err != nil {
		e.logger.Error("Failed to get due events", "error", err)
		return
	}
	if len(dueEvents) == 0 {
		return
	}

	eventCh := make(chan *domain.ScheduledEvent, len(dueEvents))
	go func() {
		defer close(eventCh)
		for _, event := range dueEvents {
			eventCh <- event
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workerSize)
	for i := 0; i < workerSize; i++ {
		go func() {
			defer wg.Done()
			for event := range eventCh {
				e.fireEvent(ctx, event)
			}
		}()
	}
	wg.Wait()
	e.logger.Info("Fired due events", "count", len(dueEvents))
}

func (e *CronEngine) fireEvent(ctx context.Context, event *domain.ScheduledEvent) {
	if err := e.eventRepo.UpdateEventStatus(ctx, event.ID, domain.EventStatusRunning); err != nil {
		e.logger.Error("Failed to mark event running", "eventId", event.ID, "error", err)
		return
	}

	e.mu.RLock()
	fn, ok := e.callbacks[event.Hook]
	e.mu.RUnlock()
	if !ok {
		e.logger.Error("No callback registered for hook", "hook", event.Hook)
		e.markStatus(ctx, event, domain.EventStatusFailed)
		return
	}

	if err := fn(ctx, event); err != nil {
		e.logger.Error("Event callback failed", "hook", event.Hook, "eventId", event.ID, "error", err)
		e.markStatus(ctx, event, domain.EventStatusFailed)
		return
	}

	if event.Recurring() {
		e.reschedule(ctx, event)
		return
	}
	e.markStatus(ctx, event, domain.EventStatusCompleted)
}

// reschedule moves a recurring event to its next slot, counted from the
// scheduled time so drift does not accumulate.
func (e *CronEngine) reschedule(ctx context.Context, event *domain.ScheduledEvent) {
	now := time.Now()
	interval := time.Duration(event.RecurrenceSec) * time.Second
	next := event.ScheduledAt.Add(interval)
	for !next.After(now) {
		next = next.Add(interval)
	}

	event.Status = domain.EventStatusPending
	event.ScheduledAt = next
	event.LastRunAt = &now
	if err := e.eventRepo.SaveEvent(ctx, event); err != nil {
		e.logger.Error("Failed to reschedule event", "hook", event.Hook, "eventId", event.ID, "error", err)
	}
}

func (e *CronEngine) markStatus(ctx context.Context, event *domain.ScheduledEvent, status domain.EventStatus) {
	if err := e.eventRepo.UpdateEventStatus(ctx, event.ID, status); err != nil {
		e.logger.Error("Failed to update event status", "eventId", event.ID, "status", status, "error", err)
	}
}

func (e *CronEngine) purgeCompleted(ctx context.Context) {
	cutoff := time.Now().Add(-e.cronCfg.PurgeAge)
	purged, err := e.eventRepo.PurgeCompleted(ctx, cutoff)
	if err != nil {
		e.logger.Error("Failed to purge completed events", "error", err)
		return
	}
	if purged > 0 {
		e.logger.Info("Purged completed events", "count", purged)
	}
}
