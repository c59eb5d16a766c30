package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/testutil"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/validation"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: m})
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type failingIssuer struct{}

func (failingIssuer) Issue(string, string, string) (string, error) {
	return "", errors.New("signing key unavailable")
}

// clearFailingCarts breaks the bulk delete that follows order creation.
type clearFailingCarts struct {
	*repo.GormRepo
}

func (clearFailingCarts) DeleteAllCarts(context.Context) (int64, error) {
	return 0, errors.New("store went away")
}

type env struct {
	repo     *repo.GormRepo
	events   *recordingPublisher
	lock     *sync.Mutex
	products *ProductService
	carts    *CartService
	orders   *OrderService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	r := testutil.NewSQLiteRepo(t)
	pub := &recordingPublisher{}
	lock := &sync.Mutex{}
	return &env{
		repo:     r,
		events:   pub,
		lock:     lock,
		products: &ProductService{Repo: r, Events: pub},
		carts:    &CartService{Repo: r, Events: pub, Lock: lock},
		orders:   &OrderService{Carts: r, Products: r, Orders: r, Events: pub, Lock: lock},
	}
}

func (e *env) product(t *testing.T, name string, price float64) *models.Product {
	t.Helper()
	p, err := e.products.CreateProduct(context.Background(), transport.CreateProductRequest{Name: name, Price: price, Category: "test"})
	require.NoError(t, err)
	return p
}

func (e *env) cart(t *testing.T, userID string, items ...transport.CartItemRequest) *models.Cart {
	t.Helper()
	c, err := e.carts.AddToCart(context.Background(), transport.CartRequest{UserID: userID, Products: items})
	require.NoError(t, err)
	return c
}

func item(productID string, qty int) transport.CartItemRequest {
	return transport.CartItemRequest{ProductID: productID, Quantity: qty}
}

func violationMessage(t *testing.T, err error) string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Error()
}

func ptr[T any](v T) *T { return &v }
