package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartService struct {
	Repo   CartStore
	Events Publisher
	// Lock is the cart-store lock shared with OrderService; nil disables it.
	Lock *sync.Mutex
}

func (s *CartService) lock() func() {
	if s.Lock == nil {
		return func() {}
	}
	s.Lock.Lock()
	return s.Lock.Unlock
}

func cartItems(req []transport.CartItemRequest) []models.CartItem {
	items := make([]models.CartItem, 0, len(req))
	for _, it := range req {
		items = append(items, models.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items
}

func (s *CartService) AddToCart(ctx context.Context, req transport.CartRequest) (*models.Cart, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cart := &models.Cart{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Products:  cartItems(req.Products),
		CreatedAt: now,
		UpdatedAt: now,
	}
	unlock := s.lock()
	err := s.Repo.CreateCart(ctx, cart)
	unlock()
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicCart, cart.UserID, map[string]any{
		"type": events.CartCreated, "cartID": cart.ID, "userID": cart.UserID, "items": len(cart.Products),
	})
	return cart, nil
}

func (s *CartService) GetAllCarts(ctx context.Context) ([]models.Cart, error) {
	return s.Repo.ListCarts(ctx)
}

func (s *CartService) GetCartByID(ctx context.Context, id string) (*models.Cart, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	cart, err := s.Repo.GetCart(ctx, id)
	if err != nil {
		return nil, notFound(err, "cart")
	}
	return cart, nil
}

// UpdateCart replaces owner and items wholesale and returns the stored result.
func (s *CartService) UpdateCart(ctx context.Context, id string, req transport.CartRequest) (*models.Cart, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	cart := &models.Cart{ID: id, UserID: req.UserID, Products: cartItems(req.Products)}
	unlock := s.lock()
	err := s.Repo.ReplaceCart(ctx, cart)
	var updated *models.Cart
	if err == nil {
		updated, err = s.Repo.GetCart(ctx, id)
	}
	unlock()
	if err != nil {
		return nil, notFound(err, "cart")
	}

	publish(ctx, s.Events, events.TopicCart, updated.UserID, map[string]any{
		"type": events.CartUpdated, "cartID": updated.ID, "userID": updated.UserID, "items": len(updated.Products),
	})
	return updated, nil
}

func (s *CartService) DeleteCart(ctx context.Context, id string) (*models.Cart, error) {
	cart, err := s.GetCartByID(ctx, id)
	if err != nil {
		return nil, err
	}
	unlock := s.lock()
	err = s.Repo.DeleteCart(ctx, id)
	unlock()
	if err != nil {
		return nil, notFound(err, "cart")
	}

	publish(ctx, s.Events, events.TopicCart, cart.UserID, map[string]any{
		"type": events.CartDeleted, "cartID": cart.ID, "userID": cart.UserID,
	})
	return cart, nil
}
