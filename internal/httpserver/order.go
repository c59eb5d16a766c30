package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, bindMessage(err))
	}

	order, err := h.Svc.PlaceOrder(ctx, req)
	if err != nil {
		var missing *service.ProductMissingError
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("place_order_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, violations(err))
		case errors.Is(err, service.ErrCartEmpty):
			l.Warn("place_order_failed", "status", 400, "reason", "no carts to order", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
		case errors.As(err, &missing):
			l.Warn("place_order_failed", "status", 400, "reason", "cart references unknown product", "product_id", missing.ProductID)
			return echo.NewHTTPError(http.StatusBadRequest, missing.Error())
		}
		l.Error("place_order_failed", "status", 500, "reason", "cannot place order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error placing order")
	}

	l.Info("place_order_success", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, transport.OK("Order placed successfully", order))
}

func (h *OrderHTTP) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_all_orders")

	orders, err := h.Svc.GetAllOrders(ctx)
	if err != nil {
		l.Error("get_orders_failed", "status", 500, "reason", "cannot list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching orders")
	}
	return c.JSON(http.StatusOK, transport.OK("", orders))
}

func (h *OrderHTTP) GetOrderByID(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	order, err := h.Svc.GetOrderByID(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			l.Warn("get_order_failed", "status", 400, "reason", "id is not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID format")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("get_order_failed", "status", 404, "reason", "order does not exist", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("get_order_failed", "status", 500, "reason", "cannot get order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching order")
	}
	return c.JSON(http.StatusOK, transport.OK("", order))
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel_order")

	order, err := h.Svc.CancelOrder(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			l.Warn("cancel_order_failed", "status", 400, "reason", "id is not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid order ID format")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("cancel_order_failed", "status", 404, "reason", "order does not exist", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		l.Error("cancel_order_failed", "status", 500, "reason", "cannot cancel order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error cancelling order")
	}

	l.Info("cancel_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, transport.OK("Order cancelled successfully", order))
}
