package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (m *MongoRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if _, err := m.orders().InsertOne(ctx, order); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (m *MongoRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := m.orders().FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, mongoErr(err)
	}
	return &order, nil
}

func (m *MongoRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	return findAll[models.Order](ctx, m.orders(), bson.M{}, creationOrder())
}

func (m *MongoRepo) DeleteOrder(ctx context.Context, id string) error {
	res, err := m.orders().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
