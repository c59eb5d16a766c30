package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type fakeSessions map[string]string

func (f fakeSessions) StoredAccessToken(_ context.Context, userID string) (string, error) {
	tok, ok := f[userID]
	if !ok {
		return "", errors.New("not found")
	}
	return tok, nil
}

func run(t *testing.T, mw *SigninMiddleware, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := mw.RequireSignin(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return c, err
}

func TestRequireSignin(t *testing.T) {
	secret := []byte("secret")
	token, err := tokens.NewIssuer(secret, time.Hour).Issue("u1", "a@b.io", "admin")
	require.NoError(t, err)

	mw := NewSigninMiddleware(secret, fakeSessions{"u1": token})

	t.Run("missing header", func(t *testing.T) {
		_, err := run(t, mw, "")
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := run(t, mw, "Bearer nope")
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("token not stored", func(t *testing.T) {
		other := NewSigninMiddleware(secret, fakeSessions{"u1": "rotated"})
		_, err := run(t, other, "Bearer "+token)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, "User not found", he.Message)
	})

	t.Run("ok with and without bearer prefix", func(t *testing.T) {
		for _, h := range []string{"Bearer " + token, token} {
			c, err := run(t, mw, h)
			require.NoError(t, err)
			assert.Equal(t, "u1", c.Get(CtxUserID))
			assert.Equal(t, "admin", c.Get(CtxRole))
		}
	})
}
