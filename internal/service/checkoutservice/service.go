package checkoutservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gostore/internal/coupon"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/metrics"
	"gostore/internal/pricing"
	"gostore/internal/warranty"
)

// State é o estado do checkout de uma sessão.
type State string

const (
	StateIdle            State = "Idle"
	StateSubmitting      State = "Submitting"
	StateCardAuthorizing State = "CardAuthorizing"
	StatePaid            State = "Paid"
	StateCardDeclined    State = "CardDeclined"
	StateCODConfirming   State = "CODConfirming"
	StateConfirmed       State = "Confirmed"
	StateFailed          State = "Failed"
	StateCancelled       State = "Cancelled"
)

// CheckoutRequest é o corpo do envio do checkout.
type CheckoutRequest struct {
	Shipping      domain.ShippingInfo  `json:"shipping"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Card          *domain.CardDetails  `json:"card,omitempty"`
}

// CheckoutResult descreve onde o checkout terminou.
type CheckoutResult struct {
	OrderID string             `json:"orderId,omitempty"`
	State   State              `json:"state"`
	Totals  domain.Totals      `json:"totals"`
	Lines   []domain.OrderLine `json:"cart,omitempty"`
}

// CartReader é o que o checkout precisa do carrinho.
type CartReader interface {
	Summary(ctx context.Context, sessionID, shippingOption string) (domain.CartSummary, error)
	Clear(ctx context.Context, sessionID string) error
}

// CouponSource fornece os cupons de oferta vigentes.
type CouponSource interface {
	Coupons(ctx context.Context) ([]domain.Coupon, error)
}

// SessionWriter grava os dados de entrega e descarta cupons vencidos.
type SessionWriter interface {
	SaveShipping(ctx context.Context, sessionID string, info domain.ShippingInfo) error
	ClearCoupon(ctx context.Context, sessionID string) error
}

// Timeouts limita cada chamada externa do checkout.
type Timeouts struct {
	Payment time.Duration
	Order   time.Duration
}

// Service orquestra o envio do pedido: entrega, cupom, totais, garantias, pagamento e gravação.
// Um checkout por sessão de cada vez.
type Service struct {
	cart     CartReader
	coupons  CouponSource
	session  SessionWriter
	orders   domain.OrderRepository
	payments domain.PaymentGateway
	issuer   *warranty.Issuer
	timeouts Timeouts
	now      func() time.Time
	logger   logger.Logger

	mu     sync.Mutex
	states map[string]State
}

// NewService cria o orquestrador de checkout.
func NewService(
	cart CartReader,
	coupons CouponSource,
	session SessionWriter,
	orders domain.OrderRepository,
	payments domain.PaymentGateway,
	issuer *warranty.Issuer,
	timeouts Timeouts,
	log logger.Logger,
) *Service {
	if timeouts.Payment <= 0 {
		timeouts.Payment = 30 * time.Second
	}
	if timeouts.Order <= 0 {
		timeouts.Order = 10 * time.Second
	}
	return &Service{
		cart:     cart,
		coupons:  coupons,
		session:  session,
		orders:   orders,
		payments: payments,
		issuer:   issuer,
		timeouts: timeouts,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   log,
		states:   make(map[string]State),
	}
}

// WithClock troca o relógio usado na revalidação do cupom.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// State devolve o estado atual do checkout da sessão.
func (s *Service) State(sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[sessionID]; ok {
		return st
	}
	return StateIdle
}

func (s *Service) begin(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[sessionID]; ok && st != StateIdle {
		return apperror.NewConflictError(fmt.Sprintf("CHECKOUT_IN_PROGRESS: checkout da sessão já está em %s.", st))
	}
	s.states[sessionID] = StateSubmitting
	return nil
}

func (s *Service) transition(sessionID string, st State) {
	s.mu.Lock()
	s.states[sessionID] = st
	s.mu.Unlock()
}

// end libera a sessão; estados terminais voltam a Idle para um novo envio.
func (s *Service) end(sessionID string, st State, method domain.PaymentMethod) {
	s.mu.Lock()
	delete(s.states, sessionID)
	s.mu.Unlock()
	if st != StateIdle {
		metrics.CheckoutOutcomes.WithLabelValues(string(st), string(method)).Inc()
	}
}

// Submit executa o checkout da sessão. Qualquer falha antes da gravação deixa o carrinho intacto.
func (s *Service) Submit(ctx context.Context, sessionID string, req CheckoutRequest) (result CheckoutResult, err error) {
	if err := s.begin(sessionID); err != nil {
		return CheckoutResult{State: s.State(sessionID)}, err
	}
	result.State = StateIdle
	defer func() { s.end(sessionID, result.State, req.PaymentMethod) }()

	if err := validateRequest(req); err != nil {
		return result, err
	}

	if err := s.session.SaveShipping(ctx, sessionID, req.Shipping); err != nil {
		return result, err
	}

	summary, err := s.cart.Summary(ctx, sessionID, req.Shipping.ShippingOption)
	if err != nil {
		return result, err
	}
	if len(summary.Items) == 0 {
		return result, apperror.NewReasonedValidationError(apperror.ReasonEmptyCart, "O carrinho está vazio.", nil)
	}

	totals, policy, err := s.revalidateCoupon(ctx, sessionID, summary)
	if err != nil {
		return result, err
	}
	result.Totals = totals

	customer := req.Shipping.FullName()
	lines := make([]domain.OrderLine, 0, len(summary.Items))
	for _, item := range summary.Items {
		lines = append(lines, s.issuer.IssueLine(customer, item))
	}
	result.Lines = lines

	draft := domain.OrderDraft{
		UserID:        sessionID,
		Shipping:      req.Shipping,
		Cart:          lines,
		PaymentMethod: req.PaymentMethod,
		SubTotal:      totals.Subtotal,
		ShippingCost:  totals.ShippingCost,
		Discount:      totals.DiscountAmount,
		TotalAmount:   totals.Total,
		Status:        domain.OrderStatusNew,
	}
	if policy != nil {
		draft.CouponCode = policy.Code
	}

	if req.PaymentMethod == domain.PaymentCard {
		result.State = StateCardAuthorizing
		s.transition(sessionID, result.State)

		confirmation, token, err := s.authorizeCard(ctx, totals, *req.Card)
		if err != nil {
			if isCancellation(ctx, err) {
				result.State = StateCancelled
				return result, apperror.NewCancelledError("autorização do cartão interrompida", err)
			}
			s.logger.Warn("Cartão recusado no checkout.", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
			result.State = StateCardDeclined
			return result, apperror.NewPaymentError("o pagamento com cartão não foi autorizado", err)
		}

		result.State = StatePaid
		s.transition(sessionID, result.State)
		draft.PaymentIntentID = confirmation.PaymentIntentID
		draft.PaymentMethodToken = token
	} else {
		result.State = StateCODConfirming
		s.transition(sessionID, result.State)
	}

	orderID, err := s.saveOrder(ctx, draft)
	if err != nil {
		if isCancellation(ctx, err) {
			result.State = StateCancelled
			return result, apperror.NewCancelledError("gravação do pedido interrompida", err)
		}
		s.logger.Error(fmt.Sprintf("Falha ao gravar pedido da sessão %s (payment_intent=%s).", sessionID, draft.PaymentIntentID), err)
		result.State = StateFailed
		return result, apperror.NewPersistenceError("não foi possível gravar o pedido", err)
	}

	result.OrderID = orderID
	result.State = StateConfirmed
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("Pedido gravado, mas o carrinho não foi limpo.", map[string]interface{}{
			"session_id": sessionID,
			"order_id":   orderID,
			"error":      err.Error(),
		})
	}

	s.logger.Info("Checkout concluído.", map[string]interface{}{
		"session_id":     sessionID,
		"order_id":       orderID,
		"payment_method": req.PaymentMethod,
		"total":          totals.Total.StringFixed(2),
	})
	return result, nil
}

// revalidateCoupon confere se o cupom da política ativa ainda existe e está vigente e aplica a
// mesma regra de invalidação do resumo do carrinho. Política que não passa é descartada e nunca aplicada.
func (s *Service) revalidateCoupon(ctx context.Context, sessionID string, summary domain.CartSummary) (domain.Totals, *domain.CouponPolicy, error) {
	if summary.Coupon == nil {
		return summary.Totals, nil, nil
	}

	offers, err := s.coupons.Coupons(ctx)
	if err != nil {
		return domain.Totals{}, nil, err
	}
	reason := ""
	if _, err := coupon.Lookup(summary.Coupon.Code, offers, s.now()); err != nil {
		reason = apperror.ReasonOf(err)
	} else if coupon.ShouldInvalidate(*summary.Coupon, summary.Totals.DiscountAmount, summary.Totals.Subtotal, false) {
		reason = apperror.ReasonBelowMinimum
	}
	if reason == "" {
		return summary.Totals, summary.Coupon, nil
	}
	s.logger.Info("Cupom descartado no checkout.", map[string]interface{}{
		"session_id":  sessionID,
		"coupon_code": summary.Coupon.Code,
		"reason":      reason,
	})

	if err := s.session.ClearCoupon(ctx, sessionID); err != nil {
		return domain.Totals{}, nil, err
	}
	return pricing.ComputeTotals(summary.Items, summary.Totals.ShippingCost, nil), nil, nil
}

func (s *Service) authorizeCard(ctx context.Context, totals domain.Totals, card domain.CardDetails) (domain.PaymentConfirmation, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Payment)
	defer cancel()

	confirmation, token, err := func() (domain.PaymentConfirmation, string, error) {
		secret, err := s.payments.CreatePaymentIntent(ctx, pricing.ToCents(totals.Total))
		if err != nil {
			return domain.PaymentConfirmation{}, "", err
		}
		token, err := s.payments.CreatePaymentMethod(ctx, card)
		if err != nil {
			return domain.PaymentConfirmation{}, "", err
		}
		confirmation, err := s.payments.ConfirmPayment(ctx, secret, token)
		return confirmation, token, err
	}()
	if err != nil && ctx.Err() != nil {
		return domain.PaymentConfirmation{}, "", fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return confirmation, token, err
}

func (s *Service) saveOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Order)
	defer cancel()
	id, err := s.orders.SaveOrder(ctx, draft)
	if err != nil && ctx.Err() != nil {
		return "", fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return id, err
}

func isCancellation(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	var cancelled *apperror.CancelledError
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &cancelled)
}

func validateRequest(req CheckoutRequest) error {
	switch req.PaymentMethod {
	case domain.PaymentCOD:
	case domain.PaymentCard:
		if req.Card == nil || strings.TrimSpace(req.Card.Token) == "" {
			return apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
				"Pagamento com cartão exige o token do cartão.", nil)
		}
	default:
		return apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
			fmt.Sprintf("Forma de pagamento '%s' inválida; use Card ou COD.", req.PaymentMethod), nil)
	}

	sh := req.Shipping
	required := []struct{ field, value string }{
		{"firstName", sh.FirstName},
		{"lastName", sh.LastName},
		{"address", sh.Address},
		{"city", sh.City},
		{"zipCode", sh.ZipCode},
		{"contactNo", sh.ContactNo},
		{"email", sh.Email},
		{"shippingOption", sh.ShippingOption},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
				fmt.Sprintf("O campo %s é obrigatório.", r.field), nil)
		}
	}
	if !strings.Contains(sh.Email, "@") {
		return apperror.NewReasonedValidationError(apperror.ReasonInvalidInput, "E-mail inválido.", nil)
	}
	return nil
}
