package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

// HeaderUserRole echoes the role carried by the caller's token on /user/me.
const HeaderUserRole = "X-User-Role"

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, bindMessage(err))
	}

	user, err := h.Svc.Signup(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			l.Warn("signup_failed", "status", 400, "reason", "email taken", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this email")
		case errors.Is(err, service.ErrInvalidRole):
			l.Warn("signup_failed", "status", 400, "reason", "unknown role", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user role")
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_failed", "status", 400, "reason", "missing fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Email, password, and username are required")
		}
		l.Error("signup_failed", "status", 500, "reason", "cannot create user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating user")
	}

	l.Info("signup_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.OK("User created successfully", user))
}

func (h *UserHTTP) Signin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.signin")

	var req transport.SigninRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signin_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, bindMessage(err))
	}

	res, err := h.Svc.Signin(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("signin_failed", "status", 400, "reason", "missing credentials", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("signin_failed", "status", 401, "reason", "bad credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		l.Error("signin_failed", "status", 500, "reason", "cannot sign in", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error signing in")
	}

	if res.Token == "" {
		l.Warn("signin_without_token", "user_id", res.User.ID)
		return c.JSON(http.StatusOK, transport.OK("Signin successful (without token)", res.User))
	}

	env := transport.OK("Signin successful", res.User)
	env.Token = res.Token
	l.Info("signin_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, env)
}

func (h *UserHTTP) GetAllUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_all_users")

	users, err := h.Svc.GetAllUsers(ctx)
	if err != nil {
		l.Error("get_users_failed", "status", 500, "reason", "cannot list users", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching users")
	}

	n := len(users)
	env := transport.OK("Users retrieved successfully", users)
	env.Count = &n
	return c.JSON(http.StatusOK, env)
}

func (h *UserHTTP) GetUserByID(c echo.Context) error {
	return h.getUser(c, c.Param("id"), "user.get_user")
}

// Me returns the account behind the bearer token.
func (h *UserHTTP) Me(c echo.Context) error {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if role, ok := c.Get(middleware.CtxRole).(string); ok {
		c.Response().Header().Set(HeaderUserRole, role)
	}
	return h.getUser(c, id, "user.me")
}

func (h *UserHTTP) getUser(c echo.Context, id, handler string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", handler)

	user, err := h.Svc.GetUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			l.Warn("get_user_failed", "status", 400, "reason", "id is not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID format")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("get_user_failed", "status", 404, "reason", "user does not exist", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		l.Error("get_user_failed", "status", 500, "reason", "cannot get user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching user")
	}
	return c.JSON(http.StatusOK, transport.OK("User retrieved successfully", user))
}
