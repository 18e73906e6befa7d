package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// calendarSweeper is the repository surface the worker needs.
type calendarSweeper interface {
	DeactivatePast(ctx context.Context, cutoff string, updatedAt time.Time) (int64, error)
}

// listInvalidator drops the cached calendar list after a sweep changed rows.
type listInvalidator interface {
	Invalidate(ctx context.Context, typeTag string)
}

// CalendarWorker periodically deactivates calendar events whose date has
// passed, so the public site only ever lists upcoming ones.
type CalendarWorker struct {
	store    calendarSweeper
	lists    listInvalidator
	interval time.Duration
}

// NewCalendarWorker constructs a CalendarWorker. lists may be nil when the
// cache is not configured.
func NewCalendarWorker(store calendarSweeper, lists listInvalidator, interval time.Duration) *CalendarWorker {
	return &CalendarWorker{
		store:    store,
		lists:    lists,
		interval: interval,
	}
}

// Start begins the periodic sweep loop and listens for context cancellation.
func (w *CalendarWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting calendar sweep worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Calendar sweep worker stopped")
			return
		}
	}
}

func (w *CalendarWorker) run(ctx context.Context) {
	now := time.Now().UTC()
	cutoff := now.Format("2006-01-02")

	n, err := w.store.DeactivatePast(ctx, cutoff, now)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep past calendar events")
		return
	}
	if n == 0 {
		return
	}

	log.Info().Int64("deactivated", n).Str("cutoff", cutoff).Msg("Calendar sweep completed")
	if w.lists != nil {
		w.lists.Invalidate(ctx, "calendar")
	}
}
