package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainarticle "festiloc/internal/domain/article"
	"festiloc/internal/domain/shared/money"
)

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection("articles")}
}

func (r *ArticleRepository) ListAll(ctx context.Context) ([]*domainarticle.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domainarticle.Article
	for cur.Next(ctx) {
		var doc articleDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toModel())
	}
	return out, cur.Err()
}

func (r *ArticleRepository) ByID(ctx context.Context, id domainarticle.ArticleID) (*domainarticle.Article, error) {
	var doc articleDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainarticle.ErrArticleNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *ArticleRepository) Save(ctx context.Context, a *domainarticle.Article) error {
	doc := articleDocument{
		ID:            string(a.ID),
		Name:          a.Name,
		CategoryID:    a.CategoryID,
		Description:   a.Description,
		QuantityTotal: a.QuantityTotal,
		PricePerDay:   a.PricePerDay.Amount,
		Currency:      a.PricePerDay.Currency,
		ImageURL:      a.ImageURL,
		Active:        a.Active,
		CreatedAt:     a.CreatedAt.UnixMilli(),
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

type articleDocument struct {
	ID            string `bson:"_id"`
	Name          string `bson:"name"`
	CategoryID    string `bson:"category_id"`
	Description   string `bson:"description,omitempty"`
	QuantityTotal int    `bson:"quantity_total"`
	PricePerDay   int64  `bson:"price_per_day"`
	Currency      string `bson:"currency"`
	ImageURL      string `bson:"image_url,omitempty"`
	Active        bool   `bson:"active"`
	CreatedAt     int64  `bson:"created_at"`
}

func (d articleDocument) toModel() *domainarticle.Article {
	return &domainarticle.Article{
		ID:            domainarticle.ArticleID(d.ID),
		Name:          d.Name,
		CategoryID:    d.CategoryID,
		Description:   d.Description,
		QuantityTotal: d.QuantityTotal,
		PricePerDay:   money.Money{Amount: d.PricePerDay, Currency: d.Currency},
		ImageURL:      d.ImageURL,
		Active:        d.Active,
		CreatedAt:     timestampToTime(d.CreatedAt),
	}
}
