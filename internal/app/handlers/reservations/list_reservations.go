package reservations

import (
	"context"
	"time"

	"festiloc/internal/app/dto"
	"festiloc/internal/app/queries"
	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
)

const (
	listKey     = "reservation.list"
	byMonthKey  = "reservation.list_by_month"
	byClientKey = "reservation.list_by_client"
	byIDKey     = "reservation.get"
)

type ListQuery struct{}

func (q ListQuery) Key() string { return listKey }

type ByMonthQuery struct {
	Year  int
	Month time.Month
}

func (q ByMonthQuery) Key() string { return byMonthKey }

type ByClientQuery struct {
	ClientID string
}

func (q ByClientQuery) Key() string { return byClientKey }

type GetQuery struct {
	ReservationID string
}

func (q GetQuery) Key() string { return byIDKey }

type ListHandler struct {
	Reservations domainreservation.Repository
	Clients      domainclient.Source
}

func (h *ListHandler) Handle(ctx context.Context, q ListQuery) (dto.ReservationCollection, error) {
	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	clients, err := h.Clients.ListAll(ctx)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	return dto.MapReservations(domainreservation.Merge(list), clients), nil
}

var _ queries.Handler[ListQuery, dto.ReservationCollection] = (*ListHandler)(nil)

type ByMonthHandler struct {
	Reservations domainreservation.Repository
	Clients      domainclient.Source
}

func (h *ByMonthHandler) Handle(ctx context.Context, q ByMonthQuery) (dto.ReservationCollection, error) {
	list, err := h.Reservations.ListByMonth(ctx, q.Year, q.Month)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	clients, err := h.Clients.ListAll(ctx)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	return dto.MapReservations(domainreservation.Merge(list), clients), nil
}

var _ queries.Handler[ByMonthQuery, dto.ReservationCollection] = (*ByMonthHandler)(nil)

type ByClientHandler struct {
	Reservations domainreservation.Repository
	Clients      domainclient.Source
}

func (h *ByClientHandler) Handle(ctx context.Context, q ByClientQuery) (dto.ReservationCollection, error) {
	list, err := h.Reservations.ListByClient(ctx, domainclient.ClientID(q.ClientID))
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	clients, err := h.Clients.ListAll(ctx)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	return dto.MapReservations(domainreservation.Merge(list), clients), nil
}

var _ queries.Handler[ByClientQuery, dto.ReservationCollection] = (*ByClientHandler)(nil)

type GetHandler struct {
	Reservations domainreservation.Repository
	Clients      domainclient.Source
}

func (h *GetHandler) Handle(ctx context.Context, q GetQuery) (dto.Reservation, error) {
	r, err := h.Reservations.ByID(ctx, domainreservation.ReservationID(q.ReservationID))
	if err != nil {
		return dto.Reservation{}, err
	}
	clients, err := h.Clients.ListAll(ctx)
	if err != nil {
		return dto.Reservation{}, err
	}
	return dto.MapReservation(r, clients), nil
}

var _ queries.Handler[GetQuery, dto.Reservation] = (*GetHandler)(nil)
