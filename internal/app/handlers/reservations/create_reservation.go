package reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"festiloc/internal/app/commands"
	"festiloc/internal/app/policies"
	domainarticle "festiloc/internal/domain/article"
	domainavailability "festiloc/internal/domain/availability"
	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
	"festiloc/internal/domain/shared/daterange"
	"festiloc/internal/domain/shared/money"
)

const createKey = "reservation.create"

type CreateItem struct {
	ArticleID string
	Quantity  int
}

type CreateCommand struct {
	ClientID  string
	StartDate time.Time
	EndDate   time.Time
	Items     []CreateItem
	Remarks   string
}

func (c CreateCommand) Key() string { return createKey }

type CreateResult struct {
	ReservationID string `json:"reservation_id"`
}

// ErrInsufficientStock carries the first article that cannot cover the
// requested quantity for every day of the span.
type ErrInsufficientStock struct {
	ArticleID string
	Remaining int
}

func (e ErrInsufficientStock) Error() string {
	return fmt.Sprintf("reservations: article %s has only %d remaining over the requested span", e.ArticleID, e.Remaining)
}

type CreateHandler struct {
	Reservations domainreservation.Repository
	Articles     domainarticle.Source
	Clients      domainclient.Source
	Publisher    policies.EventPublisher
	Clock        func() time.Time
}

// Handle validates, prices and stores a new reservation. An inverted date
// range is clamped here, at ingestion, so the calculations never see one.
// The availability gate uses the minimum remaining quantity across the span;
// articles without stock data resolve to unknown and do not block.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*CreateResult, error) {
	now := h.now()

	if _, err := h.Clients.ByID(ctx, domainclient.ClientID(cmd.ClientID)); err != nil {
		return nil, err
	}

	articles, err := h.Articles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[domainarticle.ArticleID]*domainarticle.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}

	start := daterange.DayOf(cmd.StartDate)
	end := daterange.DayOf(cmd.EndDate)
	if end.Before(start) {
		end = start
	}
	span, err := daterange.New(start, end)
	if err != nil {
		return nil, err
	}

	existing, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stock := domainarticle.StockIndex(articles)

	// An article may appear on several lines of one request; the gate must
	// see the summed quantity, not each line against untouched stock.
	requested := make(map[domainarticle.ArticleID]int, len(cmd.Items))
	for _, in := range cmd.Items {
		requested[domainarticle.ArticleID(in.ArticleID)] += in.Quantity
	}

	days := span.Days()
	perDay := int64(0)
	items := make([]domainreservation.Item, 0, len(cmd.Items))
	gated := make(map[domainarticle.ArticleID]bool, len(requested))
	for _, in := range cmd.Items {
		id := domainarticle.ArticleID(in.ArticleID)
		art, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("reservations: %w: %s", domainarticle.ErrArticleNotFound, in.ArticleID)
		}
		if !gated[id] {
			res := domainavailability.ForArticle(id, span, existing, stock)
			if !res.Allows(requested[id]) {
				return nil, ErrInsufficientStock{ArticleID: in.ArticleID, Remaining: res.Remaining}
			}
			gated[id] = true
		}
		items = append(items, domainreservation.Item{
			ArticleID: id,
			Quantity:  in.Quantity,
			UnitPrice: art.PricePerDay,
		})
		perDay += art.PricePerDay.Amount * int64(in.Quantity)
	}

	total := money.Money{Amount: perDay * int64(days), Currency: money.DefaultCurrency}

	r, err := domainreservation.New(domainreservation.CreateParams{
		ID:         domainreservation.ReservationID(uuid.NewString()),
		ClientID:   domainclient.ClientID(cmd.ClientID),
		StartDate:  start,
		EndDate:    end,
		Items:      items,
		TotalPrice: total,
		Remarks:    cmd.Remarks,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	if err := h.Reservations.Save(ctx, r); err != nil {
		return nil, err
	}
	if err := publish(ctx, h.Publisher, r); err != nil {
		return nil, err
	}
	return &CreateResult{ReservationID: string(r.ID)}, nil
}

func (h *CreateHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CreateCommand, *CreateResult] = (*CreateHandler)(nil)
