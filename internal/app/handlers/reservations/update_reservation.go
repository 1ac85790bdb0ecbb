package reservations

import (
	"context"
	"fmt"
	"time"

	"festiloc/internal/app/commands"
	"festiloc/internal/app/policies"
	domainreservation "festiloc/internal/domain/reservation"
)

const (
	updateKey = "reservation.update"
	deleteKey = "reservation.delete"
)

type UpdateCommand struct {
	ReservationID string
	// Zero dates leave the span untouched.
	StartDate time.Time
	EndDate   time.Time
	// Empty status leaves the status untouched.
	Status  string
	Remarks *string
}

func (c UpdateCommand) Key() string { return updateKey }

type UpdateResult struct {
	ReservationID string `json:"reservation_id"`
}

type UpdateHandler struct {
	Reservations domainreservation.Repository
	Publisher    policies.EventPublisher
	Clock        func() time.Time
}

func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*UpdateResult, error) {
	now := h.now()
	r, err := h.Reservations.ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}

	if !cmd.StartDate.IsZero() || !cmd.EndDate.IsZero() {
		start, end := cmd.StartDate, cmd.EndDate
		if start.IsZero() {
			start = r.Span.Start
		}
		if end.IsZero() {
			end = r.Span.End
		}
		if err := r.Reschedule(start, end, now); err != nil {
			return nil, err
		}
	}

	if cmd.Status != "" {
		if err := transition(r, domainreservation.Status(cmd.Status), now); err != nil {
			return nil, err
		}
	}

	if cmd.Remarks != nil {
		r.Remarks = *cmd.Remarks
		r.UpdatedAt = now.UTC()
	}

	if err := h.Reservations.Save(ctx, r); err != nil {
		return nil, err
	}
	if err := publish(ctx, h.Publisher, r); err != nil {
		return nil, err
	}
	return &UpdateResult{ReservationID: string(r.ID)}, nil
}

func transition(r *domainreservation.Reservation, target domainreservation.Status, now time.Time) error {
	if r.Status == target {
		return nil
	}
	switch target {
	case domainreservation.StatusConfirmed:
		return r.Confirm(now)
	case domainreservation.StatusCancelled:
		return r.Cancel("", now)
	case domainreservation.StatusCompleted:
		return r.Complete(now)
	default:
		return fmt.Errorf("%w: to %s", domainreservation.ErrInvalidState, target)
	}
}

func (h *UpdateHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

func publish(ctx context.Context, p policies.EventPublisher, r *domainreservation.Reservation) error {
	evs := r.PendingEvents()
	r.ClearEvents()
	if p == nil || len(evs) == 0 {
		return nil
	}
	return p.Publish(ctx, evs...)
}

var _ commands.Handler[UpdateCommand, *UpdateResult] = (*UpdateHandler)(nil)

type DeleteCommand struct {
	ReservationID string
}

func (c DeleteCommand) Key() string { return deleteKey }

type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

type DeleteHandler struct {
	Reservations domainreservation.Repository
	Publisher    policies.EventPublisher
	Clock        func() time.Time
}

func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) (*DeleteResult, error) {
	id := domainreservation.ReservationID(cmd.ReservationID)
	if err := h.Reservations.Delete(ctx, id); err != nil {
		return nil, err
	}
	if h.Publisher != nil {
		now := time.Now().UTC()
		if h.Clock != nil {
			now = h.Clock()
		}
		if err := h.Publisher.Publish(ctx, domainreservation.ReservationDeleted{ReservationID: id, At: now}); err != nil {
			return nil, err
		}
	}
	return &DeleteResult{Deleted: true}, nil
}

var _ commands.Handler[DeleteCommand, *DeleteResult] = (*DeleteHandler)(nil)
