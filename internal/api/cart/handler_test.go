package cart_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gostore/internal/api/cart"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
	"gostore/internal/service/cartservice"
)

type MockCartService struct{ mock.Mock }

func (m *MockCartService) Summary(ctx context.Context, sessionID, shippingOption string) (domain.CartSummary, error) {
	args := m.Called(ctx, sessionID, shippingOption)
	return args.Get(0).(domain.CartSummary), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, sessionID string, req cartservice.AddItemRequest) (domain.CartSummary, error) {
	args := m.Called(ctx, sessionID, req)
	return args.Get(0).(domain.CartSummary), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, sessionID, productID, variant string, quantity int) (domain.CartSummary, error) {
	args := m.Called(ctx, sessionID, productID, variant, quantity)
	return args.Get(0).(domain.CartSummary), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, sessionID, productID, variant string) (domain.CartSummary, error) {
	args := m.Called(ctx, sessionID, productID, variant)
	return args.Get(0).(domain.CartSummary), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockCartService) ApplyCoupon(ctx context.Context, sessionID, code string) (domain.CartSummary, error) {
	args := m.Called(ctx, sessionID, code)
	return args.Get(0).(domain.CartSummary), args.Error(1)
}

func (m *MockCartService) RemoveCoupon(ctx context.Context, sessionID string) (domain.CartSummary, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.CartSummary), args.Error(1)
}

func serve(h *cart.Handler, req *http.Request, withSession bool) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/cart", h.GetCartHandler)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCartHandler)
	mux.HandleFunc("GET /v1/cart/summary", h.SummaryHandler)
	mux.HandleFunc("POST /v1/cart/items", h.AddItemHandler)
	mux.HandleFunc("PUT /v1/cart/items/{productID}", h.UpdateItemHandler)
	mux.HandleFunc("DELETE /v1/cart/items/{productID}", h.RemoveItemHandler)
	mux.HandleFunc("POST /v1/cart/coupon", h.ApplyCouponHandler)
	mux.HandleFunc("DELETE /v1/cart/coupon", h.RemoveCouponHandler)

	if withSession {
		req = req.WithContext(middleware.WithSessionClaims(req.Context(), middleware.SessionClaims{SessionID: "s1", Role: "guest"}))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func summary() domain.CartSummary {
	return domain.CartSummary{Totals: domain.Totals{Total: decimal.NewFromInt(95)}}
}

func TestCartHandlers_RequireSession(t *testing.T) {
	h := cart.NewHandler(new(MockCartService), logger.NewNop())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/cart", nil), false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddItemHandler(t *testing.T) {
	svc := new(MockCartService)
	svc.On("AddItem", mock.Anything, "s1", cartservice.AddItemRequest{
		ProductID: "r1",
		Quantity:  2,
		Selection: domain.SelectedAttributes{"Size": "6", "Metal": "Gold"},
	}).Return(summary(), nil)
	h := cart.NewHandler(svc, logger.NewNop())

	body := `{"productId":"r1","quantity":2,"selectedAttributes":{"Size":"6","Metal":"Gold"}}`
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(body)), true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestAddItemHandler_OutOfStock(t *testing.T) {
	svc := new(MockCartService)
	svc.On("AddItem", mock.Anything, "s1", mock.Anything).
		Return(domain.CartSummary{}, apperror.NewReasonedValidationError(apperror.ReasonOutOfStock, "Chain está fora de estoque.", nil))
	h := cart.NewHandler(svc, logger.NewNop())

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(`{"productId":"n1"}`)), true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"OUT_OF_STOCK"`)
}

func TestUpdateAndRemoveItemHandlers(t *testing.T) {
	svc := new(MockCartService)
	svc.On("UpdateQuantity", mock.Anything, "s1", "r1", "6;Gold", 3).Return(summary(), nil)
	svc.On("RemoveItem", mock.Anything, "s1", "r1", "7;Silver").Return(summary(), nil)
	h := cart.NewHandler(svc, logger.NewNop())

	rec := serve(h, httptest.NewRequest(http.MethodPut, "/v1/cart/items/r1", strings.NewReader(`{"quantity":3,"variant":"6;Gold"}`)), true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/v1/cart/items/r1?variant=7%3BSilver", nil), true)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCouponHandlers(t *testing.T) {
	svc := new(MockCartService)
	svc.On("ApplyCoupon", mock.Anything, "s1", "RING10").Return(summary(), nil)
	svc.On("ApplyCoupon", mock.Anything, "s1", "OLD").
		Return(domain.CartSummary{}, apperror.NewReasonedValidationError(apperror.ReasonCouponExpired, "This coupon is not valid!", nil))
	svc.On("RemoveCoupon", mock.Anything, "s1").Return(summary(), nil)
	h := cart.NewHandler(svc, logger.NewNop())

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/cart/coupon", strings.NewReader(`{"couponCode":"RING10"}`)), true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/v1/cart/coupon", strings.NewReader(`{"couponCode":"OLD"}`)), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "This coupon is not valid!")

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/v1/cart/coupon", nil), true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSummaryAndClearHandlers(t *testing.T) {
	svc := new(MockCartService)
	svc.On("Summary", mock.Anything, "s1", "express").Return(summary(), nil)
	svc.On("Clear", mock.Anything, "s1").Return(nil)
	h := cart.NewHandler(svc, logger.NewNop())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/cart/summary?shippingOption=express", nil), true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalAmount":"95"`)

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/v1/cart", nil), true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	svc.AssertExpectations(t)
}
