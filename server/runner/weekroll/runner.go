// Package weekroll provides a background runner that rolls stored week
// selections forward when a week boundary passes.
package weekroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/studyzen/studyzen/server/service/week"
	"github.com/studyzen/studyzen/store"
)

// Store is the slice of the store layer the runner needs.
type Store interface {
	ListWeekSelections(ctx context.Context, find *store.FindWeekSelection) ([]*store.WeekSelection, error)
	UpsertWeekSelection(ctx context.Context, upsert *store.UpsertWeekSelection) (*store.WeekSelection, error)
}

// grace keeps the timer from firing a hair before the boundary on coarse
// clocks and re-running within the same instant.
const grace = 5 * time.Second

// Runner advances week selections at week boundaries.
type Runner struct {
	store Store
	now   func() time.Time
}

// NewRunner creates a new week roll runner.
func NewRunner(store Store) *Runner {
	return &Runner{
		store: store,
		now:   time.Now,
	}
}

// Run blocks until ctx is canceled. Instead of polling, it arms a one-shot
// timer for the next Monday-midnight boundary, advances every stored
// selection when it fires, and re-arms for the following boundary.
func (r *Runner) Run(ctx context.Context) {
	slog.Info("week roll runner started")

	for {
		now := r.now()
		boundary := week.NextBoundary(now)
		timer := time.NewTimer(boundary.Sub(now) + grace)

		select {
		case <-timer.C:
			// The sleep can overshoot (suspend, clock adjustments), so the
			// advance is computed from the wall clock, not the boundary.
			r.advanceAll(ctx)
		case <-ctx.Done():
			timer.Stop()
			slog.Info("week roll runner stopped")
			return
		}
	}
}

func (r *Runner) advanceAll(ctx context.Context) {
	selections, err := r.store.ListWeekSelections(ctx, &store.FindWeekSelection{})
	if err != nil {
		slog.Error("failed to list week selections", "error", err)
		return
	}

	now := r.now()
	advanced := 0
	for _, selection := range selections {
		state := week.Advance(week.FromParts(selection.Week, selection.SetAt(), now), now)
		if state.Week == selection.Week && state.SetAt.Unix() == selection.SetAtTs {
			continue
		}
		if _, err := r.store.UpsertWeekSelection(ctx, &store.UpsertWeekSelection{
			ExtensionID: selection.ExtensionID,
			Week:        state.Week,
			SetAtTs:     state.SetAt.Unix(),
		}); err != nil {
			slog.Error("failed to advance week selection", "extension_id", selection.ExtensionID, "error", err)
			continue
		}
		advanced++
	}

	if advanced > 0 {
		slog.Info("advanced week selections", "count", advanced)
	}
}
