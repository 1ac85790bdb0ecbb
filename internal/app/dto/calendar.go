package dto

import (
	"time"

	domaincalendar "festiloc/internal/domain/calendar"
	domainclient "festiloc/internal/domain/client"
)

type CalendarDay struct {
	Date            time.Time     `json:"date"`
	Day             int           `json:"day"`
	IsCurrentMonth  bool          `json:"is_current_month"`
	IsToday         bool          `json:"is_today"`
	IsWeekend       bool          `json:"is_weekend"`
	Reservations    []Reservation `json:"reservations"`
	HasReservations bool          `json:"has_reservations"`
	Revenue         float64       `json:"revenue"`
}

type Month struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	MonthName string        `json:"month_name"`
	WeekDays  []string      `json:"week_days"`
	Days      []CalendarDay `json:"days"`
}

type MonthStats struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	Count         int      `json:"total_reservations"`
	TotalRevenue  MoneyDTO `json:"total_revenue"`
	OccupiedDays  int      `json:"occupied_days"`
	OccupancyRate int      `json:"occupancy_rate"`
}

func MapMonth(view domaincalendar.MonthView, clients []*domainclient.Client) Month {
	days := make([]CalendarDay, 0, len(view.Days))
	for _, d := range view.Days {
		day := CalendarDay{
			Date:            d.Date,
			Day:             d.Day,
			IsCurrentMonth:  d.IsCurrentMonth,
			IsToday:         d.IsToday,
			IsWeekend:       d.IsWeekend,
			Reservations:    make([]Reservation, 0, len(d.Reservations)),
			HasReservations: d.HasReservations,
			Revenue:         d.Revenue,
		}
		for _, r := range d.Reservations {
			day.Reservations = append(day.Reservations, MapReservation(r, clients))
		}
		days = append(days, day)
	}
	return Month{
		Year:      view.Year,
		Month:     int(view.Month),
		MonthName: view.MonthName,
		WeekDays:  domaincalendar.WeekDayNames[:],
		Days:      days,
	}
}

func MapMonthStats(year int, month time.Month, stats domaincalendar.MonthStats) MonthStats {
	return MonthStats{
		Year:          year,
		Month:         int(month),
		Count:         stats.Count,
		TotalRevenue:  MapMoney(stats.TotalRevenue),
		OccupiedDays:  stats.OccupiedDays,
		OccupancyRate: stats.OccupancyRate,
	}
}
