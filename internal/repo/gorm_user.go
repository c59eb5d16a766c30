package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return gormErr(r.DB.WithContext(ctx).Create(u).Error)
}

func (r *GormRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, gormErr(err)
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) SetAccessToken(ctx context.Context, userID, token string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"access_token": token,
		"updated_at":   time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) StoredAccessToken(ctx context.Context, userID string) (string, error) {
	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.AccessToken, nil
}
