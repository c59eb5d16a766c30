package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (m *MongoRepo) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if _, err := m.users().InsertOne(ctx, u); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (m *MongoRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := m.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mongoErr(err)
	}
	return &u, nil
}

func (m *MongoRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := m.users().FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mongoErr(err)
	}
	return &u, nil
}

func (m *MongoRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, m.users(), bson.M{}, creationOrder())
}

func (m *MongoRepo) SetAccessToken(ctx context.Context, userID, token string) error {
	res, err := m.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"access_token": token,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) StoredAccessToken(ctx context.Context, userID string) (string, error) {
	u, err := m.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.AccessToken, nil
}
