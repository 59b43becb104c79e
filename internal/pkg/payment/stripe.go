// Package payment contém o adaptador do gateway de cartão (Stripe) e o circuit breaker que o protege.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"gostore/internal/domain"
)

// ErrDeclined indica que o gateway respondeu, mas não autorizou o pagamento.
var ErrDeclined = errors.New("payment not authorized")

// StripeGateway implementa domain.PaymentGateway sobre a API de PaymentIntents.
type StripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway cria o gateway com a chave secreta e a moeda (e.g., "usd").
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	return &StripeGateway{
		api:      client.New(secretKey, nil),
		currency: strings.ToLower(currency),
	}
}

// CreatePaymentIntent cria a intenção de pagamento em centavos e devolve o client secret.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountCents int64) (string, error) {
	if amountCents <= 0 {
		return "", fmt.Errorf("valor de pagamento inválido: %d", amountCents)
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", gatewayError("criar payment intent", err)
	}
	return pi.ClientSecret, nil
}

// CreatePaymentMethod troca o token do cartão (gerado no cliente) por um payment method.
func (g *StripeGateway) CreatePaymentMethod(ctx context.Context, card domain.CardDetails) (string, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{Token: stripe.String(card.Token)},
	}
	if card.BillingName != "" || card.BillingEmail != "" {
		params.BillingDetails = &stripe.PaymentMethodBillingDetailsParams{}
		if card.BillingName != "" {
			params.BillingDetails.Name = stripe.String(card.BillingName)
		}
		if card.BillingEmail != "" {
			params.BillingDetails.Email = stripe.String(card.BillingEmail)
		}
	}
	params.Context = ctx

	pm, err := g.api.PaymentMethods.New(params)
	if err != nil {
		return "", gatewayError("criar payment method", err)
	}
	return pm.ID, nil
}

// ConfirmPayment confirma a intenção com o payment method. Status diferentes de
// succeeded/processing/requires_capture são tratados como recusa.
func (g *StripeGateway) ConfirmPayment(ctx context.Context, clientSecret, paymentMethodToken string) (domain.PaymentConfirmation, error) {
	intentID, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return domain.PaymentConfirmation{}, err
	}

	params := &stripe.PaymentIntentConfirmParams{PaymentMethod: stripe.String(paymentMethodToken)}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		return domain.PaymentConfirmation{}, gatewayError("confirmar pagamento", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing, stripe.PaymentIntentStatusRequiresCapture:
		return domain.PaymentConfirmation{PaymentIntentID: pi.ID, Status: string(pi.Status)}, nil
	default:
		return domain.PaymentConfirmation{}, fmt.Errorf("%w: status %s", ErrDeclined, pi.Status)
	}
}

// gatewayError reduz erros da API à mensagem legível do Stripe.
// Erros de cartão viram ErrDeclined com o motivo da recusa.
func gatewayError(op string, err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return fmt.Errorf("stripe: %s: %w", op, err)
	}
	if stripeErr.Type == stripe.ErrorTypeCard {
		return fmt.Errorf("%w: %s", ErrDeclined, stripeErr.Msg)
	}
	return fmt.Errorf("stripe: %s: %s", op, stripeErr.Msg)
}

// IntentIDFromSecret extrai o ID "pi_..." do client secret "pi_..._secret_...".
func IntentIDFromSecret(clientSecret string) (string, error) {
	id, _, ok := strings.Cut(clientSecret, "_secret_")
	if !ok || id == "" {
		return "", errors.New("client secret mal formado")
	}
	return id, nil
}
