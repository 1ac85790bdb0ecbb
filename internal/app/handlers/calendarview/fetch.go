package calendarview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
)

// ErrDataUnavailable is surfaced when both the scoped fetch and the
// full-collection fallback failed. A grid is never assembled from partial
// data and never rendered empty as if it were complete.
var ErrDataUnavailable = errors.New("calendarview: reservation data unavailable")

// monthSnapshot is the joined result of one navigation's fan-out. Both
// fetches must have completed before a grid is built from it.
type monthSnapshot struct {
	reservations []*domainreservation.Reservation
	clients      []*domainclient.Client
}

// fetchMonthSnapshot fans out the reservation and client fetches
// concurrently and joins before returning. The month-scoped reservation
// query falls back to the full collection when it fails; the merged result
// is deduplicated downstream, so mixing sources cannot double-render a
// reservation.
func fetchMonthSnapshot(ctx context.Context, year int, month time.Month, reservations domainreservation.Repository, clients domainclient.Source, logger *slog.Logger) (monthSnapshot, error) {
	var (
		wg      sync.WaitGroup
		resList []*domainreservation.Reservation
		resErr  error
		cliList []*domainclient.Client
		cliErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		resList, resErr = fetchReservations(ctx, year, month, reservations, logger)
	}()
	go func() {
		defer wg.Done()
		cliList, cliErr = clients.ListAll(ctx)
	}()
	wg.Wait()

	if resErr != nil {
		return monthSnapshot{}, resErr
	}
	if cliErr != nil {
		return monthSnapshot{}, fmt.Errorf("calendarview: client fetch failed: %w", cliErr)
	}
	return monthSnapshot{reservations: resList, clients: cliList}, nil
}

func fetchReservations(ctx context.Context, year int, month time.Month, repo domainreservation.Repository, logger *slog.Logger) ([]*domainreservation.Reservation, error) {
	scoped, err := repo.ListByMonth(ctx, year, month)
	if err == nil {
		return scoped, nil
	}
	if logger != nil {
		logger.Warn("month-scoped reservation fetch failed, falling back to full fetch", "year", year, "month", int(month), "error", err)
	}
	all, fallbackErr := repo.ListAll(ctx)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: scoped: %v, fallback: %v", ErrDataUnavailable, err, fallbackErr)
	}
	return all, nil
}
