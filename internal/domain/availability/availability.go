package availability

import (
	"time"

	"festiloc/internal/domain/article"
	"festiloc/internal/domain/reservation"
	"festiloc/internal/domain/shared/daterange"
)

// Result is the remaining rentable quantity of one article over a requested
// span. Known distinguishes a computed figure from missing stock data: a
// caller must not block a booking just because stock for the article was
// never loaded, so absence is reported as unknown rather than zero.
type Result struct {
	ArticleID article.ArticleID
	Remaining int
	Known     bool
}

// Allows reports whether a booking of the given quantity may proceed. An
// unknown result never blocks; the decision is left to the caller's policy.
func (r Result) Allows(quantity int) bool {
	if !r.Known {
		return true
	}
	return r.Remaining >= quantity
}

// ForArticle computes the remaining quantity of one article across every day
// of the span. Each day's remaining quantity is the owned stock minus the
// quantities held by non-cancelled reservations overlapping that day; the
// span's result is the minimum across all days, because a booking must hold
// its quantity on every day it covers, not just on average.
func ForArticle(id article.ArticleID, span daterange.Span, reservations []*reservation.Reservation, stock map[article.ArticleID]int) Result {
	total, ok := stock[id]
	if !ok {
		return Result{ArticleID: id}
	}
	remaining := total
	first := true
	span.EachDay(func(day time.Time) {
		left := total - reservedOn(day, id, reservations)
		if first || left < remaining {
			remaining = left
			first = false
		}
	})
	return Result{ArticleID: id, Remaining: remaining, Known: true}
}

// ForArticles runs the span computation independently for each requested
// article, keyed by identity.
func ForArticles(ids []article.ArticleID, span daterange.Span, reservations []*reservation.Reservation, stock map[article.ArticleID]int) map[article.ArticleID]Result {
	out := make(map[article.ArticleID]Result, len(ids))
	for _, id := range ids {
		out[id] = ForArticle(id, span, reservations, stock)
	}
	return out
}

func reservedOn(day time.Time, id article.ArticleID, reservations []*reservation.Reservation) int {
	reserved := 0
	for _, r := range reservations {
		if r.IsCancelled() {
			continue
		}
		if !r.Span.ContainsDay(day) {
			continue
		}
		reserved += r.QuantityOf(id)
	}
	return reserved
}
