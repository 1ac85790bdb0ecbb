package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainclient "festiloc/internal/domain/client"
)

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection("clients")}
}

func (r *ClientRepository) ByID(ctx context.Context, id domainclient.ClientID) (*domainclient.Client, error) {
	var doc clientDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainclient.ErrClientNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *ClientRepository) ListAll(ctx context.Context) ([]*domainclient.Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domainclient.Client
	for cur.Next(ctx) {
		var doc clientDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toModel())
	}
	return out, cur.Err()
}

func (r *ClientRepository) Save(ctx context.Context, c *domainclient.Client) error {
	doc := clientDocument{
		ID:          string(c.ID),
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		EventType:   c.EventType,
		Address:     c.Address,
		CompanyName: c.CompanyName,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt.UnixMilli(),
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

type clientDocument struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Phone       string `bson:"phone"`
	Email       string `bson:"email,omitempty"`
	EventType   string `bson:"event_type,omitempty"`
	Address     string `bson:"address,omitempty"`
	CompanyName string `bson:"company_name,omitempty"`
	Active      bool   `bson:"active"`
	CreatedAt   int64  `bson:"created_at"`
}

func (d clientDocument) toModel() *domainclient.Client {
	return &domainclient.Client{
		ID:          domainclient.ClientID(d.ID),
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		EventType:   d.EventType,
		Address:     d.Address,
		CompanyName: d.CompanyName,
		Active:      d.Active,
		CreatedAt:   timestampToTime(d.CreatedAt),
	}
}
