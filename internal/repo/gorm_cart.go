package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func preloadCartItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func numberCartItems(cart *models.Cart) {
	for i := range cart.Products {
		cart.Products[i].ID = 0
		cart.Products[i].CartID = cart.ID
		cart.Products[i].Position = i
	}
}

func (r *GormRepo) CreateCart(ctx context.Context, cart *models.Cart) error {
	numberCartItems(cart)
	return gormErr(r.DB.WithContext(ctx).Create(cart).Error)
}

func (r *GormRepo) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Preload("Products", preloadCartItems).Where("id = ?", id).First(&cart).Error; err != nil {
		return nil, gormErr(err)
	}
	return &cart, nil
}

// ListCarts returns carts in creation order.
func (r *GormRepo) ListCarts(ctx context.Context) ([]models.Cart, error) {
	carts := make([]models.Cart, 0)
	if err := r.DB.WithContext(ctx).Preload("Products", preloadCartItems).Order("created_at ASC, id ASC").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *GormRepo) ListCartsByUser(ctx context.Context, userID string) ([]models.Cart, error) {
	carts := make([]models.Cart, 0)
	if err := r.DB.WithContext(ctx).Preload("Products", preloadCartItems).
		Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// ReplaceCart swaps owner and items of an existing cart in one transaction.
func (r *GormRepo) ReplaceCart(ctx context.Context, cart *models.Cart) error {
	numberCartItems(cart)
	cart.UpdatedAt = time.Now().UTC()

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]any{
			"user_id":    cart.UserID,
			"updated_at": cart.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(cart.Products) == 0 {
			return nil
		}
		return tx.Create(&cart.Products).Error
	})
}

func (r *GormRepo) DeleteCart(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Cart{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error
	})
}

func (r *GormRepo) DeleteAllCarts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("1 = 1").Delete(&models.Cart{})
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}

func (r *GormRepo) DeleteCartsByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("cart_id IN (?)", owned).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", userID).Delete(&models.Cart{})
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}
