package repo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (m *MongoRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	now := time.Now().UTC()
	if prod.CreatedAt.IsZero() {
		prod.CreatedAt = now
	}
	prod.UpdatedAt = now
	if _, err := m.products().InsertOne(ctx, prod); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (m *MongoRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var prod models.Product
	if err := m.products().FindOne(ctx, bson.M{"_id": id}).Decode(&prod); err != nil {
		return nil, mongoErr(err)
	}
	return &prod, nil
}

func (m *MongoRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, m.products(), bson.M{}, creationOrder())
}

func (m *MongoRepo) FindProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return findAll[models.Product](ctx, m.products(), bson.M{"_id": bson.M{"$in": ids}})
}

func (m *MongoRepo) UpdateProduct(ctx context.Context, prod *models.Product) error {
	prod.UpdatedAt = time.Now().UTC()
	res, err := m.products().UpdateOne(ctx, bson.M{"_id": prod.ID}, bson.M{"$set": bson.M{
		"name":        prod.Name,
		"price":       prod.Price,
		"description": prod.Description,
		"category":    prod.Category,
		"image_url":   prod.ImageURL,
		"updated_at":  prod.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) DeleteProduct(ctx context.Context, id string) error {
	res, err := m.products().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(q)), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"category": re},
		bson.M{"description": re},
	}}

	total, err := m.products().CountDocuments(ctx, filter)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count products: %w", err)
	}

	opts := creationOrder().SetSkip(int64(offset)).SetLimit(int64(limit))
	items, err := findAll[models.Product](ctx, m.products(), filter, opts)
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
