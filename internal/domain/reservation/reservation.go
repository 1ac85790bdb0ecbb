package reservation

import (
	"context"
	"errors"
	"time"

	"festiloc/internal/domain/article"
	"festiloc/internal/domain/client"
	"festiloc/internal/domain/shared/daterange"
	"festiloc/internal/domain/shared/events"
	"festiloc/internal/domain/shared/money"
)

var (
	ErrInvalidQuantity     = errors.New("reservation: item quantity must be positive")
	ErrNoItems             = errors.New("reservation: at least one item required")
	ErrInvalidState        = errors.New("reservation: invalid state transition")
	ErrReservationNotFound = errors.New("reservation: not found")
)

type ReservationID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Item is one article line of a reservation. Items are owned by their
// reservation and never shared between reservations.
type Item struct {
	ArticleID article.ArticleID
	Quantity  int
	UnitPrice money.Money
}

// Reservation is a client's rental of equipment over an inclusive span of
// calendar days. Dates are day-granular; time-of-day is never significant.
type Reservation struct {
	ID         ReservationID
	ClientID   client.ClientID
	Span       daterange.Span
	Status     Status
	TotalPrice money.Money
	Items      []Item
	Active     bool
	Remarks    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	ListAll(ctx context.Context) ([]*Reservation, error)
	ListByMonth(ctx context.Context, year int, month time.Month) ([]*Reservation, error)
	ListByClient(ctx context.Context, id client.ClientID) ([]*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	Delete(ctx context.Context, id ReservationID) error
}

type CreateParams struct {
	ID         ReservationID
	ClientID   client.ClientID
	StartDate  time.Time
	EndDate    time.Time
	Items      []Item
	TotalPrice money.Money
	Remarks    string
	CreatedAt  time.Time
}

// New normalizes and validates incoming data before it reaches any
// calculation: dates are truncated to calendar days and an end date before
// the start date is clamped to it. Downstream code may assume Span is valid.
func New(params CreateParams) (*Reservation, error) {
	if params.ClientID == "" {
		return nil, errors.New("reservation: client id required")
	}
	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range params.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	start := daterange.DayOf(params.StartDate)
	end := daterange.DayOf(params.EndDate)
	if end.Before(start) {
		end = start
	}
	span, err := daterange.New(start, end)
	if err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	r := &Reservation{
		ID:         params.ID,
		ClientID:   params.ClientID,
		Span:       span,
		Status:     StatusPending,
		TotalPrice: params.TotalPrice,
		Items:      append([]Item(nil), params.Items...),
		Active:     true,
		Remarks:    params.Remarks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.Record(ReservationRequested{ReservationID: r.ID, ClientID: r.ClientID, Span: r.Span, Total: r.TotalPrice, At: now})
	return r, nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if r.Status != StatusPending {
		return ErrInvalidState
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(ReservationConfirmed{ReservationID: r.ID, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if r.Status == StatusCancelled || r.Status == StatusCompleted {
		return ErrInvalidState
	}
	r.Status = StatusCancelled
	r.Active = false
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCancelled{ReservationID: r.ID, Reason: reason, At: r.UpdatedAt})
	return nil
}

func (r *Reservation) Complete(now time.Time) error {
	if r.Status != StatusConfirmed {
		return ErrInvalidState
	}
	r.Status = StatusCompleted
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCompleted{ReservationID: r.ID, At: r.UpdatedAt})
	return nil
}

// Reschedule moves the reservation to a new span, applying the same
// normalization as New.
func (r *Reservation) Reschedule(start, end time.Time, now time.Time) error {
	if r.Status == StatusCancelled || r.Status == StatusCompleted {
		return ErrInvalidState
	}
	s := daterange.DayOf(start)
	e := daterange.DayOf(end)
	if e.Before(s) {
		e = s
	}
	span, err := daterange.New(s, e)
	if err != nil {
		return err
	}
	r.Span = span
	r.UpdatedAt = now.UTC()
	r.Record(ReservationRescheduled{ReservationID: r.ID, Span: span, At: r.UpdatedAt})
	return nil
}

// IsCancelled reports whether the reservation no longer counts toward
// revenue, occupancy or reserved stock.
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// QuantityOf returns the total quantity of the given article held by this
// reservation across all of its items.
func (r *Reservation) QuantityOf(id article.ArticleID) int {
	total := 0
	for _, item := range r.Items {
		if item.ArticleID == id {
			total += item.Quantity
		}
	}
	return total
}
