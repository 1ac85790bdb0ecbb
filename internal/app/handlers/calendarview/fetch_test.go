package calendarview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
	"festiloc/internal/domain/shared/daterange"
	"festiloc/internal/domain/shared/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mkReservation(id string, start, end time.Time) *domainreservation.Reservation {
	span, _ := daterange.New(start, end)
	return &domainreservation.Reservation{
		ID:         domainreservation.ReservationID(id),
		ClientID:   "cli-1",
		Span:       span,
		Status:     domainreservation.StatusConfirmed,
		TotalPrice: money.DZD(300),
		Active:     true,
	}
}

// stubRepo drives the fetch paths with per-method behaviors.
type stubRepo struct {
	byMonth   func(ctx context.Context, year int, month time.Month) ([]*domainreservation.Reservation, error)
	all       func(ctx context.Context) ([]*domainreservation.Reservation, error)
	allCalled bool
}

func (s *stubRepo) ByID(context.Context, domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	return nil, domainreservation.ErrReservationNotFound
}

func (s *stubRepo) ListAll(ctx context.Context) ([]*domainreservation.Reservation, error) {
	s.allCalled = true
	if s.all == nil {
		return nil, nil
	}
	return s.all(ctx)
}

func (s *stubRepo) ListByMonth(ctx context.Context, year int, month time.Month) ([]*domainreservation.Reservation, error) {
	if s.byMonth == nil {
		return nil, nil
	}
	return s.byMonth(ctx, year, month)
}

func (s *stubRepo) ListByClient(context.Context, domainclient.ClientID) ([]*domainreservation.Reservation, error) {
	return nil, nil
}

func (s *stubRepo) Save(context.Context, *domainreservation.Reservation) error { return nil }

func (s *stubRepo) Delete(context.Context, domainreservation.ReservationID) error { return nil }

type stubClients struct {
	list []*domainclient.Client
	err  error
}

func (s *stubClients) ByID(context.Context, domainclient.ClientID) (*domainclient.Client, error) {
	return nil, domainclient.ErrClientNotFound
}

func (s *stubClients) ListAll(context.Context) ([]*domainclient.Client, error) {
	return s.list, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchMonthSnapshot(t *testing.T) {
	ctx := context.Background()
	clients := &stubClients{list: []*domainclient.Client{{ID: "cli-1", Name: "Karim Benali"}}}

	t.Run("scoped fetch preferred", func(t *testing.T) {
		want := []*domainreservation.Reservation{mkReservation("res-1", date(2024, 6, 10), date(2024, 6, 12))}
		repo := &stubRepo{
			byMonth: func(_ context.Context, year int, month time.Month) ([]*domainreservation.Reservation, error) {
				if year != 2024 || month != time.June {
					t.Errorf("scoped fetch asked for %d %s", year, month)
				}
				return want, nil
			},
		}
		snap, err := fetchMonthSnapshot(ctx, 2024, time.June, repo, clients, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snap.reservations) != 1 || snap.reservations[0].ID != "res-1" {
			t.Errorf("snapshot reservations = %v", snap.reservations)
		}
		if repo.allCalled {
			t.Error("full fetch should not run when the scoped fetch succeeds")
		}
		if len(snap.clients) != 1 {
			t.Errorf("snapshot clients = %d, want 1", len(snap.clients))
		}
	})

	t.Run("falls back to full fetch", func(t *testing.T) {
		want := []*domainreservation.Reservation{mkReservation("res-2", date(2024, 6, 1), date(2024, 6, 2))}
		repo := &stubRepo{
			byMonth: func(context.Context, int, time.Month) ([]*domainreservation.Reservation, error) {
				return nil, errors.New("index missing")
			},
			all: func(context.Context) ([]*domainreservation.Reservation, error) {
				return want, nil
			},
		}
		snap, err := fetchMonthSnapshot(ctx, 2024, time.June, repo, clients, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !repo.allCalled {
			t.Error("fallback full fetch should have run")
		}
		if len(snap.reservations) != 1 || snap.reservations[0].ID != "res-2" {
			t.Errorf("snapshot reservations = %v", snap.reservations)
		}
	})

	t.Run("both fetches failing is unavailable", func(t *testing.T) {
		repo := &stubRepo{
			byMonth: func(context.Context, int, time.Month) ([]*domainreservation.Reservation, error) {
				return nil, errors.New("scoped down")
			},
			all: func(context.Context) ([]*domainreservation.Reservation, error) {
				return nil, errors.New("full down")
			},
		}
		_, err := fetchMonthSnapshot(ctx, 2024, time.June, repo, clients, discardLogger())
		if !errors.Is(err, ErrDataUnavailable) {
			t.Errorf("expected ErrDataUnavailable, got %v", err)
		}
	})

	t.Run("client failure fails the join", func(t *testing.T) {
		repo := &stubRepo{}
		broken := &stubClients{err: errors.New("clients down")}
		_, err := fetchMonthSnapshot(ctx, 2024, time.June, repo, broken, discardLogger())
		if err == nil {
			t.Error("expected error when client fetch fails")
		}
	})
}

func TestGetMonthHandler(t *testing.T) {
	repo := &stubRepo{
		byMonth: func(context.Context, int, time.Month) ([]*domainreservation.Reservation, error) {
			return []*domainreservation.Reservation{mkReservation("res-1", date(2024, 6, 10), date(2024, 6, 12))}, nil
		},
	}
	clients := &stubClients{list: []*domainclient.Client{{ID: "cli-1", Name: "Karim Benali"}}}
	handler := &GetMonthHandler{Reservations: repo, Clients: clients, Logger: discardLogger()}

	view, err := handler.Handle(context.Background(), GetMonthQuery{Year: 2024, Month: time.June, Now: date(2024, 6, 14)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Year != 2024 || view.Month != 6 {
		t.Errorf("view position = %d-%d", view.Year, view.Month)
	}
	if len(view.Days)%7 != 0 {
		t.Errorf("view days = %d, not week aligned", len(view.Days))
	}

	found := false
	for _, day := range view.Days {
		if day.IsCurrentMonth && day.Day == 11 {
			found = true
			if len(day.Reservations) != 1 {
				t.Fatalf("day 11 reservations = %d, want 1", len(day.Reservations))
			}
			if got := day.Reservations[0].ClientName; got != "Karim Benali" {
				t.Errorf("client name = %q", got)
			}
		}
	}
	if !found {
		t.Fatal("day 11 missing from view")
	}
}
