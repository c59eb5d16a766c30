package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, bindMessage(err))
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, violations(err))
		}
		l.Error("create_product_failed", "status", 500, "reason", "cannot save product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating product")
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, transport.OK("Product created successfully", prod))
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching products")
	}

	return c.JSON(http.StatusOK, transport.OK("", items))
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	prod, err := h.Svc.GetProduct(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			l.Warn("get_product_failed", "status", 400, "reason", "id is not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID format")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("get_product_failed", "status", 404, "reason", "product does not exist", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching product")
	}

	return c.JSON(http.StatusOK, transport.OK("", prod))
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, bindMessage(err))
	}

	prod, err := h.Svc.UpdateProduct(ctx, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			l.Warn("update_product_failed", "status", 400, "reason", "id is not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID format")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_product_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, violations(err))
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_product_failed", "status", 404, "reason", "product does not exist", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("update_product_failed", "status", 500, "reason", "cannot update product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating product")
	}

	l.Info("update_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, transport.OK("Product updated successfully.", prod))
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	prod, err := h.Svc.DeleteProduct(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			l.Warn("delete_product_failed", "status", 400, "reason", "id is not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID format")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("delete_product_failed", "status", 404, "reason", "product does not exist", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("delete_product_failed", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting product")
	}

	l.Info("delete_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, transport.OK("Product deleted successfully.", prod))
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("search_products_failed", "status", 400, "reason", "empty query", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
		}
		l.Error("search_products_failed", "status", 500, "reason", "cannot search products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error searching products")
	}

	env := transport.OK("", res.Items)
	env.Meta = &transport.Page{
		Page:       res.Page,
		Size:       res.Size,
		Total:      res.Total,
		TotalPages: util.TotalPages(res.Total, res.Size),
		HasPrev:    res.Page > 1,
		HasNext:    int64(res.Offset+res.Size) < res.Total,
	}
	return c.JSON(http.StatusOK, env)
}
