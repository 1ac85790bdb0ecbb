package dto

import (
	"time"

	domainarticle "festiloc/internal/domain/article"
	domainavailability "festiloc/internal/domain/availability"
)

// ArticleAvailability reports the remaining quantity over a requested span.
// Remaining is null when no stock data was found for the article, which is
// different from a remaining quantity of zero.
type ArticleAvailability struct {
	ArticleID string `json:"article_id"`
	Known     bool   `json:"known"`
	Remaining *int   `json:"remaining"`
}

type AvailabilityReport struct {
	From     time.Time             `json:"from"`
	To       time.Time             `json:"to"`
	Articles []ArticleAvailability `json:"articles"`
}

func MapAvailability(from, to time.Time, ids []domainarticle.ArticleID, results map[domainarticle.ArticleID]domainavailability.Result) AvailabilityReport {
	report := AvailabilityReport{From: from, To: to, Articles: make([]ArticleAvailability, 0, len(ids))}
	for _, id := range ids {
		res := results[id]
		entry := ArticleAvailability{ArticleID: string(id), Known: res.Known}
		if res.Known {
			remaining := res.Remaining
			entry.Remaining = &remaining
		}
		report.Articles = append(report.Articles, entry)
	}
	return report
}

type Article struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CategoryID    string    `json:"category_id"`
	Description   string    `json:"description,omitempty"`
	QuantityTotal int       `json:"quantity_total"`
	PricePerDay   MoneyDTO  `json:"price_per_day"`
	ImageURL      string    `json:"image_url,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

type ArticleCollection struct {
	Items []Article `json:"items"`
}

func MapArticle(a *domainarticle.Article) Article {
	if a == nil {
		return Article{}
	}
	return Article{
		ID:            string(a.ID),
		Name:          a.Name,
		CategoryID:    a.CategoryID,
		Description:   a.Description,
		QuantityTotal: a.QuantityTotal,
		PricePerDay:   MapMoney(a.PricePerDay),
		ImageURL:      a.ImageURL,
		Active:        a.Active,
		CreatedAt:     a.CreatedAt,
	}
}

func MapArticles(list []*domainarticle.Article) ArticleCollection {
	items := make([]Article, 0, len(list))
	for _, a := range list {
		items = append(items, MapArticle(a))
	}
	return ArticleCollection{Items: items}
}
