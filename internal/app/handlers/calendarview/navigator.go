package calendarview

import (
	"context"
	"sync"
	"time"

	"festiloc/internal/app/dto"
	domaincalendar "festiloc/internal/domain/calendar"
)

// LoadFunc fetches and assembles a month view.
type LoadFunc func(ctx context.Context, year int, month time.Month, now time.Time) (dto.Month, error)

// Navigator is the month navigation session. Each navigation carries a
// monotonically increasing generation; a load that finishes after a newer
// navigation has already been issued is discarded instead of overwriting the
// displayed view. That discard is the only ordering guarantee the calendar
// needs, and a stale load is not an error.
type Navigator struct {
	load  LoadFunc
	clock func() time.Time

	mu         sync.Mutex
	generation uint64
	year       int
	month      time.Month
	current    dto.Month
	loaded     bool
}

func NewNavigator(load LoadFunc, clock func() time.Time) *Navigator {
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	year, month := domaincalendar.ThisMonth(now)
	return &Navigator{load: load, clock: clock, year: year, month: month}
}

// Current returns the displayed view, false before the first completed load.
func (n *Navigator) Current() (dto.Month, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.loaded
}

// Position returns the month the navigator points at.
func (n *Navigator) Position() (int, time.Month) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.year, n.month
}

func (n *Navigator) Next(ctx context.Context) (dto.Month, error) {
	return n.navigate(ctx, func(year int, month time.Month) (int, time.Month) {
		return domaincalendar.Next(year, month)
	})
}

func (n *Navigator) Previous(ctx context.Context) (dto.Month, error) {
	return n.navigate(ctx, func(year int, month time.Month) (int, time.Month) {
		return domaincalendar.Previous(year, month)
	})
}

func (n *Navigator) Today(ctx context.Context) (dto.Month, error) {
	return n.navigate(ctx, func(int, time.Month) (int, time.Month) {
		return domaincalendar.ThisMonth(n.clock())
	})
}

// Refresh rebuilds the currently displayed month from fresh data.
func (n *Navigator) Refresh(ctx context.Context) (dto.Month, error) {
	return n.navigate(ctx, func(year int, month time.Month) (int, time.Month) {
		return year, month
	})
}

func (n *Navigator) navigate(ctx context.Context, step func(int, time.Month) (int, time.Month)) (dto.Month, error) {
	n.mu.Lock()
	n.year, n.month = step(n.year, n.month)
	n.generation++
	gen := n.generation
	year, month := n.year, n.month
	n.mu.Unlock()

	view, err := n.load(ctx, year, month, n.clock())

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.generation {
		// Superseded by a newer navigation; keep whatever that one shows.
		return n.current, nil
	}
	if err != nil {
		return dto.Month{}, err
	}
	n.current = view
	n.loaded = true
	return view, nil
}
