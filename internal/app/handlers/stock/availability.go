package stock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"festiloc/internal/app/dto"
	"festiloc/internal/app/queries"
	domainarticle "festiloc/internal/domain/article"
	domainavailability "festiloc/internal/domain/availability"
	domainreservation "festiloc/internal/domain/reservation"
	"festiloc/internal/domain/shared/daterange"
)

const availabilityKey = "stock.availability"

type AvailabilityQuery struct {
	ArticleIDs []string
	From       time.Time
	To         time.Time
}

func (q AvailabilityQuery) Key() string { return availabilityKey }

type AvailabilityHandler struct {
	Reservations domainreservation.Repository
	Articles     domainarticle.Source
	Logger       *slog.Logger
}

// Handle answers "how many of each article remain rentable over this span".
// Articles and reservations are fetched concurrently and joined before any
// figure is computed; an article missing from stock data yields an unknown
// entry rather than zero.
func (h *AvailabilityHandler) Handle(ctx context.Context, q AvailabilityQuery) (dto.AvailabilityReport, error) {
	span, err := daterange.New(q.From, q.To)
	if err != nil {
		return dto.AvailabilityReport{}, err
	}

	var (
		wg       sync.WaitGroup
		articles []*domainarticle.Article
		artErr   error
		resList  []*domainreservation.Reservation
		resErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		articles, artErr = h.Articles.ListAll(ctx)
	}()
	go func() {
		defer wg.Done()
		resList, resErr = h.Reservations.ListAll(ctx)
	}()
	wg.Wait()

	if artErr != nil {
		return dto.AvailabilityReport{}, fmt.Errorf("stock: article fetch failed: %w", artErr)
	}
	if resErr != nil {
		return dto.AvailabilityReport{}, fmt.Errorf("stock: reservation fetch failed: %w", resErr)
	}

	ids := make([]domainarticle.ArticleID, 0, len(q.ArticleIDs))
	for _, raw := range q.ArticleIDs {
		ids = append(ids, domainarticle.ArticleID(raw))
	}
	if len(ids) == 0 {
		for _, a := range articles {
			ids = append(ids, a.ID)
		}
	}

	results := domainavailability.ForArticles(ids, span, domainreservation.Merge(resList), domainarticle.StockIndex(articles))
	return dto.MapAvailability(span.Start, span.End, ids, results), nil
}

var _ queries.Handler[AvailabilityQuery, dto.AvailabilityReport] = (*AvailabilityHandler)(nil)
