package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req transport.CartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, bindMessage(err))
	}

	cart, err := h.Svc.AddToCart(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_to_cart_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, violations(err))
		}
		l.Error("add_to_cart_failed", "status", 500, "reason", "cannot save cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error adding to cart")
	}

	l.Info("add_to_cart_success", "cart_id", cart.ID)
	return c.JSON(http.StatusCreated, transport.OK("Item added to cart", cart))
}

func (h *CartHTTP) GetAllCarts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_all_carts")

	carts, err := h.Svc.GetAllCarts(ctx)
	if err != nil {
		l.Error("get_carts_failed", "status", 500, "reason", "cannot list carts", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching carts")
	}
	return c.JSON(http.StatusOK, transport.OK("", carts))
}

func (h *CartHTTP) GetCartByID(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	cart, err := h.Svc.GetCartByID(ctx, c.Param("id"))
	if err != nil {
		return h.lookupError(l, "get_cart_failed", err, "Error fetching cart")
	}
	return c.JSON(http.StatusOK, transport.OK("", cart))
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_cart")

	var req transport.CartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, bindMessage(err))
	}

	cart, err := h.Svc.UpdateCart(ctx, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_cart_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, violations(err))
		}
		return h.lookupError(l, "update_cart_failed", err, "Error updating cart")
	}

	l.Info("update_cart_success", "cart_id", cart.ID)
	return c.JSON(http.StatusOK, transport.OK("Cart updated", cart))
}

func (h *CartHTTP) DeleteCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_cart")

	cart, err := h.Svc.DeleteCart(ctx, c.Param("id"))
	if err != nil {
		return h.lookupError(l, "delete_cart_failed", err, "Error deleting cart")
	}

	l.Info("delete_cart_success", "cart_id", cart.ID)
	return c.JSON(http.StatusOK, transport.OK("Cart deleted", cart))
}

func (h *CartHTTP) lookupError(l *slog.Logger, event string, err error, serverMsg string) error {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		l.Warn(event, "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid cart ID format")
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "cart does not exist", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "Cart not found")
	}
	l.Error(event, "status", 500, "reason", serverMsg, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, serverMsg)
}
