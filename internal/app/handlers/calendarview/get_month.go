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

const getMonthKey = "calendar.month"

type GetMonthQuery struct {
	Year  int
	Month time.Month
	// Now anchors the is-today flag; zero means the wall clock.
	Now time.Time
}

func (q GetMonthQuery) Key() string { return getMonthKey }

type GetMonthHandler struct {
	Reservations domainreservation.Repository
	Clients      domainclient.Source
	Logger       *slog.Logger
}

func (h *GetMonthHandler) Handle(ctx context.Context, q GetMonthQuery) (dto.Month, error) {
	snap, err := fetchMonthSnapshot(ctx, q.Year, q.Month, h.Reservations, h.Clients, h.Logger)
	if err != nil {
		return dto.Month{}, err
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	view := domaincalendar.BuildMonth(q.Year, q.Month, now, snap.reservations)
	return dto.MapMonth(view, snap.clients), nil
}

var _ queries.Handler[GetMonthQuery, dto.Month] = (*GetMonthHandler)(nil)
