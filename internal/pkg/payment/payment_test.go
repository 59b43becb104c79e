package payment_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	cb "github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/payment"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePaymentIntent(ctx context.Context, amountCents int64) (string, error) {
	args := m.Called(ctx, amountCents)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CreatePaymentMethod(ctx context.Context, card domain.CardDetails) (string, error) {
	args := m.Called(ctx, card)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) ConfirmPayment(ctx context.Context, clientSecret, token string) (domain.PaymentConfirmation, error) {
	args := m.Called(ctx, clientSecret, token)
	return args.Get(0).(domain.PaymentConfirmation), args.Error(1)
}

func TestIntentIDFromSecret(t *testing.T) {
	id, err := payment.IntentIDFromSecret("pi_3Nabc_secret_xyz")
	require.NoError(t, err)
	assert.Equal(t, "pi_3Nabc", id)

	for _, bad := range []string{"", "pi_3Nabc", "_secret_xyz"} {
		_, err := payment.IntentIDFromSecret(bad)
		assert.Error(t, err, "secret %q", bad)
	}
}

func TestBreakerGateway_PassesResults(t *testing.T) {
	inner := new(MockGateway)
	inner.On("CreatePaymentIntent", mock.Anything, int64(9500)).Return("pi_1_secret_a", nil)
	inner.On("CreatePaymentMethod", mock.Anything, domain.CardDetails{Token: "tok_visa"}).Return("pm_1", nil)
	inner.On("ConfirmPayment", mock.Anything, "pi_1_secret_a", "pm_1").
		Return(domain.PaymentConfirmation{PaymentIntentID: "pi_1", Status: "succeeded"}, nil)

	gw := payment.NewBreakerGateway(inner, 3, time.Minute, logger.NewNop())
	ctx := context.Background()

	secret, err := gw.CreatePaymentIntent(ctx, 9500)
	require.NoError(t, err)
	pm, err := gw.CreatePaymentMethod(ctx, domain.CardDetails{Token: "tok_visa"})
	require.NoError(t, err)
	conf, err := gw.ConfirmPayment(ctx, secret, pm)
	require.NoError(t, err)

	assert.Equal(t, "pi_1", conf.PaymentIntentID)
	inner.AssertExpectations(t)
}

func TestBreakerGateway_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := new(MockGateway)
	inner.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return("", errors.New("gateway unreachable")).Times(2)

	gw := payment.NewBreakerGateway(inner, 2, time.Minute, logger.NewNop())

	for i := 0; i < 2; i++ {
		_, err := gw.CreatePaymentIntent(context.Background(), 100)
		require.Error(t, err)
	}
	_, err := gw.CreatePaymentIntent(context.Background(), 100)

	assert.ErrorIs(t, err, cb.ErrOpenState)
	inner.AssertNumberOfCalls(t, "CreatePaymentIntent", 2)
}

func TestBreakerGateway_DeclinesDoNotTrip(t *testing.T) {
	inner := new(MockGateway)
	declined := fmt.Errorf("%w: insufficient funds", payment.ErrDeclined)
	inner.On("ConfirmPayment", mock.Anything, mock.Anything, mock.Anything).Return(domain.PaymentConfirmation{}, declined)

	gw := payment.NewBreakerGateway(inner, 1, time.Minute, logger.NewNop())

	for i := 0; i < 3; i++ {
		_, err := gw.ConfirmPayment(context.Background(), "pi_1_secret_a", "pm_1")
		assert.ErrorIs(t, err, payment.ErrDeclined)
	}
	inner.AssertNumberOfCalls(t, "ConfirmPayment", 3)
}
