package calendar

import (
	"fmt"
	"math"
	"sort"
	"time"

	"festiloc/internal/domain/reservation"
	"festiloc/internal/domain/shared/daterange"
	"festiloc/internal/domain/shared/money"
)

// MonthStats summarizes one month of reservation activity.
type MonthStats struct {
	Count         int
	TotalRevenue  money.Money
	OccupiedDays  int
	OccupancyRate int
}

// MonthlyStats attributes each reservation to the month its stay begins in,
// even when it extends into a following month. This deliberately differs from
// the per-day proration of DayRevenue: the two are independent views and must
// not be reconciled into one formula.
//
// Count covers every reservation starting in the month regardless of status;
// revenue and occupancy cover only the non-cancelled ones. Revenue is the
// full stored price, not a prorated share, and a total in a foreign currency
// fails the aggregation instead of being silently added to the dinar sum.
func MonthlyStats(year int, month time.Month, reservations []*reservation.Reservation) (MonthStats, error) {
	var started []*reservation.Reservation
	for _, r := range reservations {
		if r.Span.Start.Year() == year && r.Span.Start.Month() == month {
			started = append(started, r)
		}
	}

	revenue := money.DZD(0)
	occupied := make(map[int]struct{})
	for _, r := range started {
		if r.IsCancelled() {
			continue
		}
		sum, err := revenue.Add(r.TotalPrice)
		if err != nil {
			return MonthStats{}, fmt.Errorf("calendar: revenue of reservation %s: %w", r.ID, err)
		}
		revenue = sum
		r.Span.EachDay(func(day time.Time) {
			if day.Year() == year && day.Month() == month {
				occupied[day.Day()] = struct{}{}
			}
		})
	}

	totalDays := daterange.DaysInMonth(year, month)
	rate := 0
	if totalDays > 0 {
		rate = int(math.Round(float64(len(occupied)) / float64(totalDays) * 100))
	}

	return MonthStats{
		Count:         len(started),
		TotalRevenue:  revenue,
		OccupiedDays:  len(occupied),
		OccupancyRate: rate,
	}, nil
}

// Upcoming returns up to limit non-cancelled reservations starting on or
// after the reference day, ordered by start date.
func Upcoming(now time.Time, limit int, reservations []*reservation.Reservation) []*reservation.Reservation {
	today := daterange.DayOf(now)
	var out []*reservation.Reservation
	for _, r := range reservations {
		if r.IsCancelled() {
			continue
		}
		if r.Span.Start.Before(today) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start.Before(out[j].Span.Start)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
