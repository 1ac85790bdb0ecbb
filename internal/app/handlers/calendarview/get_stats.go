package calendarview

import (
	"context"
	"log/slog"
	"time"

	"festiloc/internal/app/dto"
	"festiloc/internal/app/queries"
	domaincalendar "festiloc/internal/domain/calendar"
	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
)

const (
	getStatsKey = "calendar.stats"
	upcomingKey = "calendar.upcoming"
)

type GetStatsQuery struct {
	Year  int
	Month time.Month
}

func (q GetStatsQuery) Key() string { return getStatsKey }

type GetStatsHandler struct {
	Reservations domainreservation.Repository
	Logger       *slog.Logger
}

// Handle computes the month summary. Attribution is by start date: a
// reservation beginning in the month counts here in full even when its stay
// runs into the next one, while the per-day revenue on the grid is prorated
// across both. These are two distinct views of the same data.
func (h *GetStatsHandler) Handle(ctx context.Context, q GetStatsQuery) (dto.MonthStats, error) {
	list, err := fetchReservations(ctx, q.Year, q.Month, h.Reservations, h.Logger)
	if err != nil {
		return dto.MonthStats{}, err
	}
	stats, err := domaincalendar.MonthlyStats(q.Year, q.Month, domainreservation.Merge(list))
	if err != nil {
		return dto.MonthStats{}, err
	}
	return dto.MapMonthStats(q.Year, q.Month, stats), nil
}

var _ queries.Handler[GetStatsQuery, dto.MonthStats] = (*GetStatsHandler)(nil)

type UpcomingQuery struct {
	Now   time.Time
	Limit int
}

func (q UpcomingQuery) Key() string { return upcomingKey }

type UpcomingHandler struct {
	Reservations domainreservation.Repository
	Clients      domainclient.Source
	Logger       *slog.Logger
}

func (h *UpcomingHandler) Handle(ctx context.Context, q UpcomingQuery) (dto.ReservationCollection, error) {
	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	clients, err := h.Clients.ListAll(ctx)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 5
	}
	upcoming := domaincalendar.Upcoming(now, limit, domainreservation.Merge(list))
	return dto.MapReservations(upcoming, clients), nil
}

var _ queries.Handler[UpcomingQuery, dto.ReservationCollection] = (*UpcomingHandler)(nil)
