package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Deps struct {
	Products *ProductHTTP
	Carts    *CartHTTP
	Orders   *OrderHTTP
	Users    *UserHTTP
	Auth     *middleware.SigninMiddleware
	// Ready backs /health/ready; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		if err := d.Ready(c.Request().Context()); err != nil {
			logging.FromContext(c.Request().Context()).Error("readiness_failed", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	products := e.Group("/products")
	products.POST("", d.Products.CreateProduct)
	products.GET("", d.Products.GetProducts)
	products.GET("/search", d.Products.SearchProducts)
	products.GET("/:id", d.Products.GetProduct)
	products.PUT("/:id", d.Products.UpdateProduct)
	products.DELETE("/:id", d.Products.DeleteProduct)

	cart := e.Group("/cart")
	cart.POST("", d.Carts.AddToCart)
	cart.GET("", d.Carts.GetAllCarts)
	cart.GET("/:id", d.Carts.GetCartByID)
	cart.PUT("/:id", d.Carts.UpdateCart)
	cart.DELETE("/:id", d.Carts.DeleteCart)

	order := e.Group("/order")
	order.POST("", d.Orders.PlaceOrder)
	order.GET("", d.Orders.GetAllOrders)
	order.GET("/:id", d.Orders.GetOrderByID)
	order.DELETE("/:id", d.Orders.CancelOrder)

	user := e.Group("/user")
	user.POST("/signup", d.Users.Signup)
	user.POST("/signin", d.Users.Signin)
	user.GET("/users", d.Users.GetAllUsers)
	user.GET("/users/:id", d.Users.GetUserByID)
	if d.Auth != nil {
		user.GET("/me", d.Users.Me, d.Auth.RequireSignin)
	}
}
