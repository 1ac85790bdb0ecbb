package article

import (
	"context"
	"errors"
	"time"

	"festiloc/internal/domain/shared/money"
)

var ErrArticleNotFound = errors.New("article: not found")

type ArticleID string

// Article is a rentable item of equipment. It is a read-only input to the
// calendar and availability computations; stock mutations happen elsewhere.
type Article struct {
	ID            ArticleID
	Name          string
	CategoryID    string
	Description   string
	QuantityTotal int
	PricePerDay   money.Money
	ImageURL      string
	Active        bool
	CreatedAt     time.Time
}

// Source provides article records to the application layer.
type Source interface {
	ListAll(ctx context.Context) ([]*Article, error)
	ByID(ctx context.Context, id ArticleID) (*Article, error)
}

// StockIndex maps each article to its total owned quantity.
func StockIndex(articles []*Article) map[ArticleID]int {
	idx := make(map[ArticleID]int, len(articles))
	for _, a := range articles {
		idx[a.ID] = a.QuantityTotal
	}
	return idx
}
