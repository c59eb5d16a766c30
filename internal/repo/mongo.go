package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collProducts = "products"
	collCarts    = "carts"
	collOrders   = "orders"
	collUsers    = "users"
)

type MongoRepo struct {
	DB *mongo.Database
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{DB: db}
}

func (m *MongoRepo) products() *mongo.Collection { return m.DB.Collection(collProducts) }
func (m *MongoRepo) carts() *mongo.Collection    { return m.DB.Collection(collCarts) }
func (m *MongoRepo) orders() *mongo.Collection   { return m.DB.Collection(collOrders) }
func (m *MongoRepo) users() *mongo.Collection    { return m.DB.Collection(collUsers) }

func (m *MongoRepo) CreateIndexes(ctx context.Context) error {
	if _, err := m.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	if _, err := m.carts().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	if _, err := m.products().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.DB.Client().Ping(ctx, nil)
}

func creationOrder() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
}

func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}
