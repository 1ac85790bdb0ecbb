package calendar

import (
	"time"

	"festiloc/internal/domain/reservation"
	"festiloc/internal/domain/shared/daterange"
)

// WeekLength is the number of cells per grid row.
const WeekLength = 7

var monthNames = [...]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// WeekDayNames are the column headers, Sunday first.
var WeekDayNames = [...]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

// CalendarDay is one cell of a month grid. Built fresh on every grid build
// and never mutated afterwards.
type CalendarDay struct {
	Date            time.Time
	Day             int
	IsCurrentMonth  bool
	IsToday         bool
	IsWeekend       bool
	Reservations    []*reservation.Reservation
	HasReservations bool
	Revenue         float64
}

// MonthView is a week-aligned grid of days covering one month, padded at both
// ends to full weeks. Rebuilt from scratch on every navigation.
type MonthView struct {
	Year      int
	Month     time.Month
	MonthName string
	Days      []CalendarDay
}

// MonthName returns the display name for a month, empty for out-of-range values.
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month-1]
}

// BuildMonth produces the grid for the given month. The grid starts on the
// Sunday on or before the 1st and ends on the Saturday on or after the last
// day, so its length is always a multiple of 7 but varies between 28 and 42
// cells with the shape of the month.
//
// Reservation lists are merged through the dedup contract before use. Only
// days inside the target month carry reservations and revenue; the padding
// days of the neighbouring months exist for layout and stay empty.
func BuildMonth(year int, month time.Month, now time.Time, lists ...[]*reservation.Reservation) MonthView {
	reservations := reservation.Merge(lists...)
	first, last := daterange.MonthBounds(year, month)

	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	days := make([]CalendarDay, 0, daterange.InclusiveDays(gridStart, gridEnd))
	for d := gridStart; !d.After(gridEnd); d = daterange.NextDay(d) {
		day := CalendarDay{
			Date:           d,
			Day:            d.Day(),
			IsCurrentMonth: d.Year() == year && d.Month() == month,
			IsToday:        daterange.SameDay(d, now),
			IsWeekend:      d.Weekday() == time.Sunday || d.Weekday() == time.Saturday,
		}
		if day.IsCurrentMonth {
			day.Reservations = reservationsForDay(d, reservations)
			day.HasReservations = len(day.Reservations) > 0
			day.Revenue = DayRevenue(d, day.Reservations)
		}
		days = append(days, day)
	}

	return MonthView{
		Year:      year,
		Month:     month,
		MonthName: MonthName(month),
		Days:      days,
	}
}

func reservationsForDay(day time.Time, reservations []*reservation.Reservation) []*reservation.Reservation {
	var out []*reservation.Reservation
	for _, r := range reservations {
		if r.Span.ContainsDay(day) {
			out = append(out, r)
		}
	}
	return out
}

// Next returns the month after the given one.
func Next(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// Previous returns the month before the given one.
func Previous(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// ThisMonth returns the calendar month the reference time falls in.
func ThisMonth(now time.Time) (int, time.Month) {
	return now.Year(), now.Month()
}
