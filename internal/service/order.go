package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type OrderService struct {
	Carts    CartStore
	Products ProductStore
	Orders   OrderStore
	Events   Publisher

	// Lock guards the cart store from the cart read until the carts are
	// cleared. Share it with CartService so cart writes wait for placement.
	Lock *sync.Mutex

	mu sync.Mutex
}

func (s *OrderService) cartLock() *sync.Mutex {
	if s.Lock != nil {
		return s.Lock
	}
	return &s.mu
}

// PlaceOrder turns the stored carts into one order and clears them.
//
// The request items are validated but the order is built from the carts: every
// cart in the store, or only the carts of req.UserID when it is set. Every
// referenced product is checked before anything is written. A failure to clear
// the carts after the order was saved is logged and the order is still returned.
func (s *OrderService) PlaceOrder(ctx context.Context, req transport.PlaceOrderRequest) (*models.Order, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	order, err := s.place(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrder, order.ID, map[string]any{
		"type": events.OrderPlaced, "orderID": order.ID, "userID": order.UserID, "total": order.Total, "items": len(order.Items),
	})
	return order, nil
}

// place runs read, check, insert and clear under the cart lock.
func (s *OrderService) place(ctx context.Context, userID string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place_order")

	mu := s.cartLock()
	mu.Lock()
	defer mu.Unlock()

	var (
		carts []models.Cart
		err   error
	)
	if userID != "" {
		carts, err = s.Carts.ListCartsByUser(ctx, userID)
	} else {
		carts, err = s.Carts.ListCarts(ctx)
	}
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, ErrCartEmpty
	}

	prices := make(map[string]decimal.Decimal)
	total := decimal.Zero
	items := make([]models.OrderItem, 0)

	for _, cart := range carts {
		for _, it := range cart.Products {
			price, ok := prices[it.ProductID]
			if !ok {
				prod, err := s.Products.GetProduct(ctx, it.ProductID)
				if errors.Is(err, repo.ErrNotFound) {
					return nil, &ProductMissingError{ProductID: it.ProductID}
				}
				if err != nil {
					return nil, err
				}
				price = decimal.NewFromFloat(prod.Price)
				prices[it.ProductID] = price
			}

			total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			items = append(items, models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}
	}

	order := &models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     items,
		Total:     total.InexactFloat64(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	var cleared int64
	if userID != "" {
		cleared, err = s.Carts.DeleteCartsByUser(ctx, userID)
	} else {
		cleared, err = s.Carts.DeleteAllCarts(ctx)
	}
	if err != nil {
		l.Error("clear_carts_failed", "order_id", order.ID, "reason", "order saved, carts left in place", "error", err)
	} else {
		l.Info("carts_cleared", "order_id", order.ID, "carts", cleared)
	}
	return order, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.OrderView, error) {
	orders, err := s.Orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, orders)
}

func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.OrderView, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	order, err := s.Orders.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	views, err := s.expand(ctx, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *OrderService) CancelOrder(ctx context.Context, id string) (*models.Order, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	order, err := s.Orders.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := s.Orders.DeleteOrder(ctx, id); err != nil {
		return nil, notFound(err, "order")
	}

	publish(ctx, s.Events, events.TopicOrder, id, map[string]any{
		"type": events.OrderCancelled, "orderID": id,
	})
	return order, nil
}

// expand resolves every line item's product with one lookup; products that
// no longer exist are left nil.
func (s *OrderService) expand(ctx context.Context, orders []models.Order) ([]models.OrderView, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := seen[it.ProductID]; !ok {
				seen[it.ProductID] = struct{}{}
				ids = append(ids, it.ProductID)
			}
		}
	}

	found, err := s.Products.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		lines := make([]models.OrderLine, 0, len(o.Items))
		for _, it := range o.Items {
			lines = append(lines, models.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity, Product: byID[it.ProductID]})
		}
		views = append(views, models.OrderView{
			ID:        o.ID,
			UserID:    o.UserID,
			Items:     lines,
			Total:     o.Total,
			CreatedAt: o.CreatedAt,
		})
	}
	return views, nil
}
