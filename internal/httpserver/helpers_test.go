package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/testutil"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

var testSecret = []byte("handler-secret")

type testEnv struct {
	t    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
	Deps *Deps
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Token   string          `json:"token"`
	Meta    map[string]any  `json:"meta"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	r := testutil.NewSQLiteRepo(t)
	pub := events.Nop{}
	lock := &sync.Mutex{}

	d := &Deps{
		Products: &ProductHTTP{Svc: &service.ProductService{Repo: r, Events: pub}},
		Carts:    &CartHTTP{Svc: &service.CartService{Repo: r, Events: pub, Lock: lock}},
		Orders:   &OrderHTTP{Svc: &service.OrderService{Carts: r, Products: r, Orders: r, Events: pub, Lock: lock}},
		Users: &UserHTTP{Svc: &service.UserService{
			Repo: r, Tokens: tokens.NewIssuer(testSecret, 0), Events: pub,
		}},
		Auth:  middleware.NewSigninMiddleware(testSecret, r),
		Ready: r.Ping,
	}

	e := echo.New()
	Register(e, d)
	return &testEnv{t: t, E: e, Repo: r, Deps: d}
}

// doJSONRequest runs the request through the router. body may be nil, a raw
// string, or any value that is marshalled to JSON.
func (env *testEnv) doJSONRequest(method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	env.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(env.t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var out envelope
	if rec.Body.Len() > 0 {
		require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (env *testEnv) createProduct(name string, price float64) string {
	env.t.Helper()
	rec, out := env.doJSONRequest(http.MethodPost, "/products", map[string]any{
		"name": name, "price": price, "category": "test",
	})
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[map[string]any](env.t, out)["id"].(string)
}

func (env *testEnv) addCart(userID, productID string, qty int) string {
	env.t.Helper()
	rec, out := env.doJSONRequest(http.MethodPost, "/cart", map[string]any{
		"userId":   userID,
		"products": []map[string]any{{"productId": productID, "quantity": qty}},
	})
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[map[string]any](env.t, out)["id"].(string)
}
