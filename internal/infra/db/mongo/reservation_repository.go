package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainarticle "festiloc/internal/domain/article"
	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
	"festiloc/internal/domain/shared/daterange"
	"festiloc/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("agg_reservation")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *ReservationRepository) ListAll(ctx context.Context) ([]*domainreservation.Reservation, error) {
	return r.list(ctx, bson.M{})
}

// ListByMonth matches reservations whose span touches any day of the month:
// start on or before the month's last day and end on or after its first.
func (r *ReservationRepository) ListByMonth(ctx context.Context, year int, month time.Month) ([]*domainreservation.Reservation, error) {
	first, last := daterange.MonthBounds(year, month)
	filter := bson.M{
		"span.start": bson.M{"$lte": last.UnixMilli()},
		"span.end":   bson.M{"$gte": first.UnixMilli()},
	}
	return r.list(ctx, filter)
}

func (r *ReservationRepository) ListByClient(ctx context.Context, id domainclient.ClientID) ([]*domainreservation.Reservation, error) {
	return r.list(ctx, bson.M{"client_id": string(id)})
}

func (r *ReservationRepository) list(ctx context.Context, filter bson.M) ([]*domainreservation.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domainreservation.Reservation
	for cur.Next(ctx) {
		var doc reservationDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		agg, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, cur.Err()
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id domainreservation.ReservationID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainreservation.ErrReservationNotFound
	}
	return nil
}

type reservationDocument struct {
	ID        string         `bson:"_id"`
	ClientID  string         `bson:"client_id"`
	Span      spanDocument   `bson:"span"`
	Status    string         `bson:"status"`
	Total     int64          `bson:"total"`
	Currency  string         `bson:"currency"`
	Items     []itemDocument `bson:"items"`
	Active    bool           `bson:"active"`
	Remarks   string         `bson:"remarks,omitempty"`
	CreatedAt int64          `bson:"created_at"`
	UpdatedAt int64          `bson:"updated_at"`
	Version   int64          `bson:"version"`
}

type spanDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

type itemDocument struct {
	ArticleID string `bson:"article_id"`
	Quantity  int    `bson:"quantity"`
	UnitPrice int64  `bson:"unit_price"`
	Currency  string `bson:"currency"`
}

func newReservationDocument(r *domainreservation.Reservation) reservationDocument {
	items := make([]itemDocument, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, itemDocument{
			ArticleID: string(item.ArticleID),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount,
			Currency:  item.UnitPrice.Currency,
		})
	}
	return reservationDocument{
		ID:        string(r.ID),
		ClientID:  string(r.ClientID),
		Span:      spanDocument{Start: r.Span.Start.UnixMilli(), End: r.Span.End.UnixMilli()},
		Status:    string(r.Status),
		Total:     r.TotalPrice.Amount,
		Currency:  r.TotalPrice.Currency,
		Items:     items,
		Active:    r.Active,
		Remarks:   r.Remarks,
		CreatedAt: r.CreatedAt.UnixMilli(),
		UpdatedAt: r.UpdatedAt.UnixMilli(),
		Version:   r.Version,
	}
}

func (d reservationDocument) toAggregate() (*domainreservation.Reservation, error) {
	span, err := daterange.New(timestampToTime(d.Span.Start), timestampToTime(d.Span.End))
	if err != nil {
		return nil, err
	}
	items := make([]domainreservation.Item, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, domainreservation.Item{
			ArticleID: domainarticle.ArticleID(item.ArticleID),
			Quantity:  item.Quantity,
			UnitPrice: money.Money{Amount: item.UnitPrice, Currency: item.Currency},
		})
	}
	return &domainreservation.Reservation{
		ID:         domainreservation.ReservationID(d.ID),
		ClientID:   domainclient.ClientID(d.ClientID),
		Span:       span,
		Status:     domainreservation.Status(d.Status),
		TotalPrice: money.Money{Amount: d.Total, Currency: d.Currency},
		Items:      items,
		Active:     d.Active,
		Remarks:    d.Remarks,
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}, nil
}
