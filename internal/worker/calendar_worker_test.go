package worker

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"
)

type fakeSweeper struct {
	cutoff string
	n      int64
	err    error
}

func (f *fakeSweeper) DeactivatePast(ctx context.Context, cutoff string, updatedAt time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

type fakeInvalidator struct {
	tags []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, typeTag string) {
	f.tags = append(f.tags, typeTag)
}

// A cancelled context makes Start run one sweep and return.
func runOnce(w *CalendarWorker) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)
}

func TestSweepInvalidatesCalendarCache(t *testing.T) {
	sweeper := &fakeSweeper{n: 3}
	inv := &fakeInvalidator{}

	runOnce(NewCalendarWorker(sweeper, inv, time.Hour))

	if matched, _ := regexp.MatchString(`^\d{4}-\d{2}-\d{2}$`, sweeper.cutoff); !matched {
		t.Fatalf("unexpected cutoff %q", sweeper.cutoff)
	}
	if len(inv.tags) != 1 || inv.tags[0] != "calendar" {
		t.Fatalf("expected calendar invalidation, got %v", inv.tags)
	}
}

func TestSweepSkipsInvalidationWhenNothingChanged(t *testing.T) {
	sweeper := &fakeSweeper{n: 0}
	inv := &fakeInvalidator{}

	runOnce(NewCalendarWorker(sweeper, inv, time.Hour))

	if len(inv.tags) != 0 {
		t.Fatalf("expected no invalidation, got %v", inv.tags)
	}
}

func TestSweepToleratesStoreErrors(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("connection refused")}
	inv := &fakeInvalidator{}

	runOnce(NewCalendarWorker(sweeper, inv, time.Hour))

	if len(inv.tags) != 0 {
		t.Fatalf("expected no invalidation on error, got %v", inv.tags)
	}
}
