package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/api/cart"
	"gostore/internal/api/checkout"
	"gostore/internal/api/order"
	"gostore/internal/api/product"
	"gostore/internal/api/router"
	"gostore/internal/api/session"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/token"
)

func newRouter(t *testing.T) (http.Handler, *token.Service) {
	t.Helper()
	log := logger.NewNop()
	tokens := token.NewService("test-secret", time.Hour)
	h := router.Handlers{
		Session:  session.NewHandler(nil, log),
		Product:  product.NewHandler(nil, log),
		Cart:     cart.NewHandler(nil, log),
		Checkout: checkout.NewHandler(nil, log),
		Order:    order.NewHandler(nil, log),
	}
	return router.NewRouter(h, router.Options{Tokens: tokens, Logger: log}), tokens
}

func TestPing(t *testing.T) {
	r, _ := newRouter(t)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newRouter(t)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/cart"},
		{http.MethodPost, "/v1/cart/items"},
		{http.MethodPost, "/v1/cart/coupon"},
		{http.MethodPost, "/v1/checkout"},
		{http.MethodGet, "/v1/orders/o-1"},
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestProtectedRoute_InvalidToken(t *testing.T) {
	r, _ := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownMethodIsRejected(t *testing.T) {
	r, tokens := newRouter(t)
	tok, _, err := tokens.GenerateToken("s1", "guest")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
