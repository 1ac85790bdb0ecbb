package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidSpan = errors.New("daterange: end must not be before start")
)

// Span represents an inclusive interval of calendar days [Start, End].
// Time-of-day and zone of the stored values are ignored by every operation;
// comparisons work on the year/month/day triple.
type Span struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Span, error) {
	s := Span{Start: DayOf(start), End: DayOf(end)}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

func (s Span) Validate() error {
	if s.Start.IsZero() || s.End.IsZero() {
		return ErrInvalidSpan
	}
	if DayOf(s.End).Before(DayOf(s.Start)) {
		return ErrInvalidSpan
	}
	return nil
}

// Days returns the inclusive number of calendar days covered by the span.
// A span whose start and end fall on the same day counts as 1.
func (s Span) Days() int {
	return InclusiveDays(s.Start, s.End)
}

// ContainsDay reports whether t's calendar day falls inside the span.
func (s Span) ContainsDay(t time.Time) bool {
	return OverlapsDay(t, s.Start, s.End)
}

// EachDay calls fn once per calendar day of the span, in order.
func (s Span) EachDay(fn func(day time.Time)) {
	end := DayOf(s.End)
	for d := DayOf(s.Start); !d.After(end); d = NextDay(d) {
		fn(d)
	}
}

// DayOf truncates t to midnight UTC of its own calendar day. The truncation
// reads t's year/month/day in t's location, so a stored local timestamp maps
// to the day the caller meant rather than the day its UTC instant lands on.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDay returns the day after t, day-truncated.
func NextDay(t time.Time) time.Time {
	return DayOf(t).AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// OverlapsDay reports whether date's calendar day lies within [start, end]
// inclusive. Each operand is reduced to its own year/month/day first, so
// time-of-day or zone noise in stored values cannot shift the answer by a day.
func OverlapsDay(date, start, end time.Time) bool {
	d := DayOf(date)
	return !d.Before(DayOf(start)) && !d.After(DayOf(end))
}

// InclusiveDays counts the calendar days in [start, end], both ends included.
// Equal days yield 1; the result is never below 1 for a valid span.
func InclusiveDays(start, end time.Time) int {
	s, e := DayOf(start), DayOf(end)
	if e.Before(s) {
		return 1
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// MonthBounds returns the first and last calendar day of the given month.
func MonthBounds(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	_, last := MonthBounds(year, month)
	return last.Day()
}
