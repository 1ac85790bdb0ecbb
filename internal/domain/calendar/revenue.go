package calendar

import (
	"time"

	"festiloc/internal/domain/reservation"
)

// DayRevenue computes the revenue a single day is credited with: every
// non-cancelled reservation overlapping the day contributes its total price
// spread evenly across the days of its stay. Summed over a full span the
// per-day shares reconstruct the reservation's price up to float rounding.
func DayRevenue(date time.Time, reservations []*reservation.Reservation) float64 {
	total := 0.0
	for _, r := range reservations {
		if r.IsCancelled() {
			continue
		}
		if !r.Span.ContainsDay(date) {
			continue
		}
		total += r.TotalPrice.ProrateOver(r.Span.Days())
	}
	return total
}
