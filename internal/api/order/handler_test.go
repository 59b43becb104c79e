package order_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gostore/internal/api/order"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
)

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Get(ctx context.Context, sessionID, orderID string) (domain.Order, error) {
	args := m.Called(ctx, sessionID, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func serve(h *order.Handler, path string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/orders/{id}", h.GetOrderHandler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithSessionClaims(req.Context(), middleware.SessionClaims{SessionID: "s1"}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetOrderHandler(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("Get", mock.Anything, "s1", "o-1").Return(domain.Order{
		ID: "o-1",
		OrderDraft: domain.OrderDraft{
			UserID:      "s1",
			TotalAmount: decimal.NewFromInt(520),
			Status:      domain.OrderStatusNew,
		},
	}, nil)

	rec := serve(order.NewHandler(svc, logger.NewNop()), "/v1/orders/o-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"o-1"`)
	assert.Contains(t, rec.Body.String(), `"totalAmount":"520"`)
}

func TestGetOrderHandler_NotFound(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("Get", mock.Anything, "s1", "o-2").Return(domain.Order{}, apperror.NewNotFoundError("Pedido o-2 não encontrado."))

	rec := serve(order.NewHandler(svc, logger.NewNop()), "/v1/orders/o-2")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
