package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// SessionStore returns the access token currently stored for a user.
type SessionStore interface {
	StoredAccessToken(ctx context.Context, userID string) (string, error)
}

type SigninMiddleware struct {
	JWTSecret []byte
	Sessions  SessionStore
}

func NewSigninMiddleware(secret []byte, sessions SessionStore) *SigninMiddleware {
	return &SigninMiddleware{JWTSecret: secret, Sessions: sessions}
}

// RequireSignin accepts "Authorization: Bearer <token>" or the bare token, and
// only lets the request through when the token is the one stored for its subject.
func (m *SigninMiddleware) RequireSignin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "require_signin")

		header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
		if header == "" {
			l.Warn("signin_required", "status", 401, "reason", "no authorization header")
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication is required")
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := tokens.AccessClaimsFromToken(token, m.JWTSecret)
		if err != nil {
			l.Warn("signin_required", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization required")
		}

		stored, err := m.Sessions.StoredAccessToken(c.Request().Context(), claims.Subject)
		if err != nil || stored != token {
			l.Warn("signin_required", "status", 401, "reason", "token not bound to user", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, claims.Role)
		return next(c)
	}
}
