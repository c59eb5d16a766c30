package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
)

type ProductStore interface {
	CreateProduct(ctx context.Context, prod *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, prod *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error)
}

type CartStore interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCart(ctx context.Context, id string) (*models.Cart, error)
	ListCarts(ctx context.Context) ([]models.Cart, error)
	ListCartsByUser(ctx context.Context, userID string) ([]models.Cart, error)
	ReplaceCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, id string) error
	DeleteAllCarts(ctx context.Context) (int64, error)
	DeleteCartsByUser(ctx context.Context, userID string) (int64, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SetAccessToken(ctx context.Context, userID, token string) error
}

// Publisher emits domain events. Failures never fail the calling operation.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// ProductIndex mirrors the catalog into a search engine.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type TokenIssuer interface {
	Issue(userID, email, role string) (string, error)
}
