package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

// store is the method set both backends share.
type store interface {
	CreateProduct(ctx context.Context, prod *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, prod *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error)

	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCart(ctx context.Context, id string) (*models.Cart, error)
	ListCarts(ctx context.Context) ([]models.Cart, error)
	ListCartsByUser(ctx context.Context, userID string) ([]models.Cart, error)
	ReplaceCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, id string) error
	DeleteAllCarts(ctx context.Context) (int64, error)
	DeleteCartsByUser(ctx context.Context, userID string) (int64, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id string) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SetAccessToken(ctx context.Context, userID, token string) error
	StoredAccessToken(ctx context.Context, userID string) (string, error)
}

var (
	_ store = (*repo.GormRepo)(nil)
	_ store = (*repo.MongoRepo)(nil)
)

func newProduct(name, category string, price float64) *models.Product {
	return &models.Product{ID: uuid.NewString(), Name: name, Category: category, Price: price}
}

func runProductContract(t *testing.T, s store) {
	ctx := context.Background()

	pen := newProduct("Blue Pen", "office", 1.25)
	pen.Description = "ballpoint"
	require.NoError(t, s.CreateProduct(ctx, pen))
	mug := newProduct("Mug", "kitchen", 8)
	require.NoError(t, s.CreateProduct(ctx, mug))

	got, err := s.GetProduct(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, pen.Name, got.Name)
	assert.Equal(t, pen.Price, got.Price)
	assert.Equal(t, pen.Description, got.Description)
	assert.Equal(t, pen.Category, got.Category)

	_, err = s.GetProduct(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repo.ErrNotFound)

	all, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := s.FindProductsByIDs(ctx, []string{mug.ID, uuid.NewString()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, mug.ID, found[0].ID)

	empty, err := s.FindProductsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	total, hits, err := s.SearchProducts(ctx, "PEN", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, hits, 1)
	assert.Equal(t, pen.ID, hits[0].ID)

	total, hits, err = s.SearchProducts(ctx, "kitchen", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, mug.ID, hits[0].ID)

	got.Price = 2
	got.Description = ""
	require.NoError(t, s.UpdateProduct(ctx, got))
	again, err := s.GetProduct(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, again.Price)
	assert.Empty(t, again.Description)

	assert.ErrorIs(t, s.UpdateProduct(ctx, newProduct("ghost", "x", 1)), repo.ErrNotFound)

	require.NoError(t, s.DeleteProduct(ctx, pen.ID))
	assert.ErrorIs(t, s.DeleteProduct(ctx, pen.ID), repo.ErrNotFound)
}

func runCartContract(t *testing.T, s store) {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)

	first := &models.Cart{
		ID:     uuid.NewString(),
		UserID: "alice",
		Products: []models.CartItem{
			{ProductID: "p3", Quantity: 3},
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 2},
		},
		CreatedAt: base,
	}
	second := &models.Cart{
		ID:        uuid.NewString(),
		UserID:    "bob",
		Products:  []models.CartItem{{ProductID: "p9", Quantity: 9}},
		CreatedAt: base.Add(time.Minute),
	}
	third := &models.Cart{
		ID:        uuid.NewString(),
		UserID:    "alice",
		Products:  []models.CartItem{{ProductID: "p4", Quantity: 4}},
		CreatedAt: base.Add(2 * time.Minute),
	}
	require.NoError(t, s.CreateCart(ctx, second))
	require.NoError(t, s.CreateCart(ctx, first))
	require.NoError(t, s.CreateCart(ctx, third))

	got, err := s.GetCart(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)
	require.Len(t, got.Products, 3)
	assert.Equal(t, []string{"p3", "p1", "p2"}, productIDs(got.Products))

	carts, err := s.ListCarts(ctx)
	require.NoError(t, err)
	require.Len(t, carts, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{carts[0].ID, carts[1].ID, carts[2].ID})

	mine, err := s.ListCartsByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	got.UserID = "carol"
	got.Products = []models.CartItem{{ProductID: "p7", Quantity: 7}}
	require.NoError(t, s.ReplaceCart(ctx, got))
	replaced, err := s.GetCart(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", replaced.UserID)
	assert.Equal(t, []string{"p7"}, productIDs(replaced.Products))

	ghost := &models.Cart{ID: uuid.NewString(), UserID: "x", Products: []models.CartItem{{ProductID: "p", Quantity: 1}}}
	assert.ErrorIs(t, s.ReplaceCart(ctx, ghost), repo.ErrNotFound)

	n, err := s.DeleteCartsByUser(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, s.DeleteCart(ctx, second.ID))
	assert.ErrorIs(t, s.DeleteCart(ctx, second.ID), repo.ErrNotFound)

	n, err = s.DeleteAllCarts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	carts, err = s.ListCarts(ctx)
	require.NoError(t, err)
	assert.Empty(t, carts)
}

func runOrderContract(t *testing.T, s store) {
	ctx := context.Background()

	order := &models.Order{
		ID:    uuid.NewString(),
		Items: []models.OrderItem{{ProductID: "b", Quantity: 2}, {ProductID: "a", Quantity: 1}},
		Total: 42.5,
	}
	require.NoError(t, s.CreateOrder(ctx, order))

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 42.5, got.Total)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "b", got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)

	list, err := s.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteOrder(ctx, order.ID))
	assert.ErrorIs(t, s.DeleteOrder(ctx, order.ID), repo.ErrNotFound)
	_, err = s.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func runUserContract(t *testing.T, s store) {
	ctx := context.Background()

	u := &models.User{ID: uuid.NewString(), Username: "ann", Email: "ann@shop.io", PasswordHash: "h", Role: models.RoleUser}
	require.NoError(t, s.CreateUser(ctx, u))

	dup := &models.User{ID: uuid.NewString(), Username: "ann2", Email: "ann@shop.io", PasswordHash: "h", Role: models.RoleUser}
	require.Error(t, s.CreateUser(ctx, dup))

	byEmail, err := s.FindUserByEmail(ctx, "ann@shop.io")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.FindUserByEmail(ctx, "nobody@shop.io")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, s.SetAccessToken(ctx, u.ID, "tok"))
	tok, err := s.StoredAccessToken(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	assert.ErrorIs(t, s.SetAccessToken(ctx, uuid.NewString(), "tok"), repo.ErrNotFound)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func productIDs(items []models.CartItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ProductID)
	}
	return out
}
