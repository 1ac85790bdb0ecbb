package reservation

import (
	"time"

	"festiloc/internal/domain/client"
	"festiloc/internal/domain/shared/daterange"
	"festiloc/internal/domain/shared/money"
)

type ReservationRequested struct {
	ReservationID ReservationID
	ClientID      client.ClientID
	Span          daterange.Span
	Total         money.Money
	At            time.Time
}

func (e ReservationRequested) EventName() string     { return "reservation.requested" }
func (e ReservationRequested) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationRequested) OccurredAt() time.Time { return e.At }

type ReservationConfirmed struct {
	ReservationID ReservationID
	At            time.Time
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ReservationID
	Reason        string
	At            time.Time
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }

type ReservationCompleted struct {
	ReservationID ReservationID
	At            time.Time
}

func (e ReservationCompleted) EventName() string     { return "reservation.completed" }
func (e ReservationCompleted) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCompleted) OccurredAt() time.Time { return e.At }

type ReservationRescheduled struct {
	ReservationID ReservationID
	Span          daterange.Span
	At            time.Time
}

func (e ReservationRescheduled) EventName() string     { return "reservation.rescheduled" }
func (e ReservationRescheduled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationRescheduled) OccurredAt() time.Time { return e.At }

type ReservationDeleted struct {
	ReservationID ReservationID
	At            time.Time
}

func (e ReservationDeleted) EventName() string     { return "reservation.deleted" }
func (e ReservationDeleted) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationDeleted) OccurredAt() time.Time { return e.At }
