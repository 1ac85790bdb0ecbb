package calendarview

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"festiloc/internal/app/dto"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func instantLoad(_ context.Context, year int, month time.Month, _ time.Time) (dto.Month, error) {
	return dto.Month{Year: year, Month: int(month)}, nil
}

func TestNavigatorStartsAtCurrentMonth(t *testing.T) {
	nav := NewNavigator(instantLoad, fixedClock(date(2024, 6, 15)))

	year, month := nav.Position()
	if year != 2024 || month != time.June {
		t.Errorf("position = %d %s, want 2024 June", year, month)
	}
	if _, ok := nav.Current(); ok {
		t.Error("no view should be loaded before the first navigation")
	}
}

func TestNavigatorMoves(t *testing.T) {
	ctx := context.Background()
	nav := NewNavigator(instantLoad, fixedClock(date(2024, 6, 15)))

	view, err := nav.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if view.Year != 2024 || view.Month != 7 {
		t.Errorf("after Next: %d-%d, want 2024-7", view.Year, view.Month)
	}

	view, err = nav.Previous(ctx)
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if view.Month != 6 {
		t.Errorf("after Previous: month %d, want 6", view.Month)
	}

	if _, err = nav.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}
	view, err = nav.Today(ctx)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if view.Year != 2024 || view.Month != 6 {
		t.Errorf("after Today: %d-%d, want 2024-6", view.Year, view.Month)
	}

	view, err = nav.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if view.Month != 6 {
		t.Errorf("Refresh moved the position to month %d", view.Month)
	}
}

func TestNavigatorDiscardsStaleLoad(t *testing.T) {
	ctx := context.Background()

	var calls int32
	release := make(chan struct{})
	load := func(_ context.Context, year int, month time.Month, _ time.Time) (dto.Month, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// Hold the first navigation's load until a newer one lands.
			<-release
		}
		return dto.Month{Year: year, Month: int(month)}, nil
	}
	nav := NewNavigator(load, fixedClock(date(2024, 6, 15)))

	type outcome struct {
		view dto.Month
		err  error
	}
	firstDone := make(chan outcome, 1)
	go func() {
		v, err := nav.Next(ctx) // June -> July, slow load
		firstDone <- outcome{v, err}
	}()

	for atomic.LoadInt32(&calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	second, err := nav.Next(ctx) // July -> August, fast load
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second.Month != 8 {
		t.Fatalf("second Next month = %d, want 8", second.Month)
	}

	close(release)
	first := <-firstDone
	if first.err != nil {
		t.Fatalf("stale navigation returned error: %v", first.err)
	}
	if first.view.Month != 8 {
		t.Errorf("stale navigation returned month %d, want the newer month 8", first.view.Month)
	}

	current, ok := nav.Current()
	if !ok || current.Month != 8 {
		t.Errorf("displayed view = %v ok=%v, want month 8", current, ok)
	}
}

func TestNavigatorLoadError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("load failed")
	load := func(context.Context, int, time.Month, time.Time) (dto.Month, error) {
		return dto.Month{}, boom
	}
	nav := NewNavigator(load, fixedClock(date(2024, 6, 15)))

	if _, err := nav.Next(ctx); !errors.Is(err, boom) {
		t.Errorf("expected load error, got %v", err)
	}
	if _, ok := nav.Current(); ok {
		t.Error("failed load must not mark a view as displayed")
	}
	if year, month := nav.Position(); year != 2024 || month != time.July {
		t.Errorf("position = %d %s, want 2024 July (position moves even on failure)", year, month)
	}
}
