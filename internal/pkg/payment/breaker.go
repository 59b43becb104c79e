package payment

import (
	"context"
	"errors"
	"time"

	cb "github.com/sony/gobreaker"

	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/metrics"
)

// BreakerGateway decora um domain.PaymentGateway com um circuit breaker.
// Recusas de cartão não contam como falha do gateway.
type BreakerGateway struct {
	next    domain.PaymentGateway
	breaker *cb.CircuitBreaker
}

// NewBreakerGateway abre o circuito após maxFailures falhas consecutivas e tenta de novo após openTimeout.
func NewBreakerGateway(next domain.PaymentGateway, maxFailures uint32, openTimeout time.Duration, log logger.Logger) *BreakerGateway {
	settings := cb.Settings{
		Name:        "PaymentGatewayCB",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts cb.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrDeclined) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to cb.State) {
			metrics.PaymentBreakerState.Set(float64(to))
			log.Warn("Circuit breaker mudou de estado", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	}
	return &BreakerGateway{next: next, breaker: cb.NewCircuitBreaker(settings)}
}

// CreatePaymentIntent delega ao gateway protegido.
func (g *BreakerGateway) CreatePaymentIntent(ctx context.Context, amountCents int64) (string, error) {
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.CreatePaymentIntent(ctx, amountCents)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// CreatePaymentMethod delega ao gateway protegido.
func (g *BreakerGateway) CreatePaymentMethod(ctx context.Context, card domain.CardDetails) (string, error) {
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.CreatePaymentMethod(ctx, card)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// ConfirmPayment delega ao gateway protegido.
func (g *BreakerGateway) ConfirmPayment(ctx context.Context, clientSecret, paymentMethodToken string) (domain.PaymentConfirmation, error) {
	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.ConfirmPayment(ctx, clientSecret, paymentMethodToken)
	})
	if err != nil {
		return domain.PaymentConfirmation{}, err
	}
	return out.(domain.PaymentConfirmation), nil
}
