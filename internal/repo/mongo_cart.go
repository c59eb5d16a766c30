package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (m *MongoRepo) CreateCart(ctx context.Context, cart *models.Cart) error {
	now := time.Now().UTC()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	if _, err := m.carts().InsertOne(ctx, cart); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (m *MongoRepo) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	if err := m.carts().FindOne(ctx, bson.M{"_id": id}).Decode(&cart); err != nil {
		return nil, mongoErr(err)
	}
	return &cart, nil
}

func (m *MongoRepo) ListCarts(ctx context.Context) ([]models.Cart, error) {
	return findAll[models.Cart](ctx, m.carts(), bson.M{}, creationOrder())
}

func (m *MongoRepo) ListCartsByUser(ctx context.Context, userID string) ([]models.Cart, error) {
	return findAll[models.Cart](ctx, m.carts(), bson.M{"user_id": userID}, creationOrder())
}

func (m *MongoRepo) ReplaceCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	res, err := m.carts().UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{
		"user_id":    cart.UserID,
		"products":   cart.Products,
		"updated_at": cart.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to replace cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) DeleteCart(ctx context.Context, id string) error {
	res, err := m.carts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) DeleteAllCarts(ctx context.Context) (int64, error) {
	res, err := m.carts().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear carts: %w", err)
	}
	return res.DeletedCount, nil
}

func (m *MongoRepo) DeleteCartsByUser(ctx context.Context, userID string) (int64, error) {
	res, err := m.carts().DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to clear carts of user: %w", err)
	}
	return res.DeletedCount, nil
}
