package cartservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gostore/internal/catalog"
	"gostore/internal/coupon"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/metrics"
	"gostore/internal/pricing"
)

// CatalogReader é o que o carrinho precisa do catálogo.
type CatalogReader interface {
	FindProduct(ctx context.Context, id string) (domain.Product, error)
	Coupons(ctx context.Context) ([]domain.Coupon, error)
}

// AddItemRequest é o corpo de inclusão de item no carrinho.
type AddItemRequest struct {
	ProductID string                    `json:"productId"`
	Quantity  int                       `json:"quantity"`
	Selection domain.SelectedAttributes `json:"selectedAttributes,omitempty"`
}

// Service mantém o carrinho da sessão e recalcula os totais a cada mudança.
type Service struct {
	store         domain.SessionStore
	catalog       CatalogReader
	shippingRates map[string]decimal.Decimal
	now           func() time.Time
	logger        logger.Logger
}

// NewService cria o serviço de carrinho.
func NewService(store domain.SessionStore, catalog CatalogReader, shippingRates map[string]decimal.Decimal, log logger.Logger) *Service {
	return &Service{
		store:         store,
		catalog:       catalog,
		shippingRates: shippingRates,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        log,
	}
}

// WithClock troca o relógio usado na validade dos cupons.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ShippingCost devolve o frete da opção escolhida. Opção vazia não cobra frete.
func (s *Service) ShippingCost(option string) (decimal.Decimal, error) {
	if option == "" {
		return decimal.Zero, nil
	}
	cost, ok := s.shippingRates[option]
	if !ok {
		return decimal.Zero, apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
			fmt.Sprintf("Opção de entrega '%s' desconhecida.", option), nil)
	}
	return cost, nil
}

// Items devolve as linhas do carrinho da sessão.
func (s *Service) Items(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	return s.store.LoadCart(ctx, sessionID)
}

// Summary recalcula os totais do carrinho. Sem opção explícita, usa a opção de entrega salva na sessão.
// Uma política que deixou de valer é descartada da sessão antes do cálculo.
func (s *Service) Summary(ctx context.Context, sessionID, shippingOption string) (domain.CartSummary, error) {
	items, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	policy, err := s.store.LoadCoupon(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}

	if shippingOption == "" {
		info, err := s.store.LoadShipping(ctx, sessionID)
		if err != nil {
			return domain.CartSummary{}, err
		}
		if info != nil {
			shippingOption = info.ShippingOption
		}
	}
	shipping, err := s.ShippingCost(shippingOption)
	if err != nil {
		return domain.CartSummary{}, err
	}

	totals := pricing.ComputeTotals(items, shipping, policy)
	if policy != nil && coupon.ShouldInvalidate(*policy, totals.DiscountAmount, totals.Subtotal, len(items) == 0) {
		s.logger.Info("Cupom invalidado pela mudança no carrinho.", map[string]interface{}{
			"session_id":  sessionID,
			"coupon_code": policy.Code,
			"subtotal":    totals.Subtotal.StringFixed(2),
		})
		if err := s.store.ClearCoupon(ctx, sessionID); err != nil {
			return domain.CartSummary{}, err
		}
		policy = nil
		totals = pricing.ComputeTotals(items, shipping, nil)
	}

	return domain.CartSummary{
		Items:          items,
		Coupon:         policy,
		ShippingOption: shippingOption,
		Totals:         totals,
	}, nil
}

// AddItem inclui um produto no carrinho. Produtos com atributos exigem seleção completa;
// a mesma variante já presente tem a quantidade somada, limitada ao estoque da variante.
func (s *Service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (domain.CartSummary, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return domain.CartSummary{}, apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
			"A quantidade deve ser positiva.", nil)
	}

	product, err := s.catalog.FindProduct(ctx, req.ProductID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	if !product.Purchasable() {
		return domain.CartSummary{}, apperror.NewReasonedValidationError(apperror.ReasonOutOfStock,
			fmt.Sprintf("%s está fora de estoque.", product.Title), nil)
	}

	line, err := newLine(product, req)
	if err != nil {
		return domain.CartSummary{}, err
	}

	items, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}

	merged := false
	for i := range items {
		if items[i].SameLine(line) {
			line.OrderQuantity += items[i].OrderQuantity
			if err := checkStock(line); err != nil {
				return domain.CartSummary{}, err
			}
			items[i].OrderQuantity = line.OrderQuantity
			merged = true
			break
		}
	}
	if !merged {
		if err := checkStock(line); err != nil {
			return domain.CartSummary{}, err
		}
		items = append(items, line)
	}

	if err := s.store.SaveCart(ctx, sessionID, items); err != nil {
		return domain.CartSummary{}, err
	}
	s.logger.Info("Item adicionado ao carrinho.", map[string]interface{}{
		"session_id": sessionID,
		"product_id": line.ProductID,
		"variant":    variantKey(line),
		"quantity":   line.OrderQuantity,
	})
	return s.Summary(ctx, sessionID, "")
}

func newLine(product domain.Product, req AddItemRequest) (domain.CartItem, error) {
	line := domain.CartItem{
		ProductID:      product.ID,
		Title:          product.Title,
		OrderQuantity:  req.Quantity,
		ProductType:    product.ProductType,
		WarrantyPeriod: product.WarrantyPeriod,
	}

	if len(product.Attributes) == 0 {
		price, err := pricing.EffectivePrice(product.Price, product.Discount)
		if err != nil {
			return domain.CartItem{}, err
		}
		line.Price = price
		return line, nil
	}

	if err := catalog.ValidateSelection(product.Attributes, req.Selection); err != nil {
		return domain.CartItem{}, err
	}
	if !catalog.SelectionComplete(product.Attributes, req.Selection) {
		return domain.CartItem{}, apperror.NewReasonedValidationError(apperror.ReasonMalformedSelection,
			"Selecione todas as opções do produto.", nil)
	}
	variant, ok := catalog.ResolveVariant(product.Attributes, product.Variants, req.Selection)
	if !ok {
		return domain.CartItem{}, apperror.NewNotFoundError("Nenhuma variante corresponde à seleção.")
	}

	line.Price = variant.Price
	line.SelectedVariant = variant
	line.SelectedAttributes = req.Selection
	return line, nil
}

func checkStock(line domain.CartItem) error {
	if line.SelectedVariant == nil || line.OrderQuantity <= line.SelectedVariant.Stock {
		return nil
	}
	if line.SelectedVariant.Stock == 0 {
		return apperror.NewReasonedValidationError(apperror.ReasonOutOfStock,
			"A variante selecionada está fora de estoque.", nil)
	}
	return apperror.NewReasonedValidationError(apperror.ReasonOutOfStock,
		fmt.Sprintf("Apenas %d unidades disponíveis.", line.SelectedVariant.Stock), nil)
}

// UpdateQuantity troca a quantidade de uma linha. Quantidade zero remove a linha.
// variant identifica a linha ("6;Gold") quando o produto tem mais de uma no carrinho.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID, variant string, quantity int) (domain.CartSummary, error) {
	if quantity < 0 {
		return domain.CartSummary{}, apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
			"A quantidade não pode ser negativa.", nil)
	}

	items, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	idx, err := findLine(items, productID, variant)
	if err != nil {
		return domain.CartSummary{}, err
	}

	if quantity == 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		updated := items[idx]
		updated.OrderQuantity = quantity
		if err := checkStock(updated); err != nil {
			return domain.CartSummary{}, err
		}
		items[idx] = updated
	}

	if err := s.store.SaveCart(ctx, sessionID, items); err != nil {
		return domain.CartSummary{}, err
	}
	return s.Summary(ctx, sessionID, "")
}

// RemoveItem remove uma linha do carrinho.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID, variant string) (domain.CartSummary, error) {
	return s.UpdateQuantity(ctx, sessionID, productID, variant, 0)
}

// Clear esvazia o carrinho e descarta o cupom ativo.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.ClearCart(ctx, sessionID); err != nil {
		return err
	}
	return s.store.ClearCoupon(ctx, sessionID)
}

// ApplyCoupon valida o código contra os cupons de oferta e o subtotal atual e grava a política na sessão.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID, code string) (domain.CartSummary, error) {
	items, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	if len(items) == 0 {
		metrics.CouponApplications.WithLabelValues(apperror.ReasonEmptyCart).Inc()
		return domain.CartSummary{}, apperror.NewReasonedValidationError(apperror.ReasonEmptyCart,
			"O carrinho está vazio.", nil)
	}

	coupons, err := s.catalog.Coupons(ctx)
	if err != nil {
		return domain.CartSummary{}, err
	}

	policy, err := coupon.Validate(strings.TrimSpace(code), coupons, pricing.Subtotal(items), s.now())
	if err != nil {
		metrics.CouponApplications.WithLabelValues(apperror.ReasonOf(err)).Inc()
		s.logger.Debug("Cupom recusado.", map[string]interface{}{
			"session_id": sessionID,
			"code":       code,
			"reason":     apperror.ReasonOf(err),
		})
		return domain.CartSummary{}, err
	}

	if err := s.store.SaveCoupon(ctx, sessionID, policy); err != nil {
		return domain.CartSummary{}, err
	}
	metrics.CouponApplications.WithLabelValues("applied").Inc()
	s.logger.Info("Cupom aplicado.", map[string]interface{}{
		"session_id":  sessionID,
		"coupon_code": policy.Code,
	})
	return s.Summary(ctx, sessionID, "")
}

// RemoveCoupon descarta a política ativa.
func (s *Service) RemoveCoupon(ctx context.Context, sessionID string) (domain.CartSummary, error) {
	if err := s.store.ClearCoupon(ctx, sessionID); err != nil {
		return domain.CartSummary{}, err
	}
	return s.Summary(ctx, sessionID, "")
}

func variantKey(item domain.CartItem) string {
	if item.SelectedVariant == nil {
		return ""
	}
	return strings.Join(item.SelectedVariant.Options, ";")
}

// findLine localiza a linha pelo produto e, se informado, pela variante.
func findLine(items []domain.CartItem, productID, variant string) (int, error) {
	found := -1
	for i, it := range items {
		if it.ProductID != productID {
			continue
		}
		if variant != "" && variantKey(it) != variant {
			continue
		}
		if found >= 0 {
			return -1, apperror.NewReasonedValidationError(apperror.ReasonMalformedSelection,
				"O produto tem mais de uma variante no carrinho; informe a variante.", nil)
		}
		found = i
	}
	if found < 0 {
		return -1, apperror.NewNotFoundError(fmt.Sprintf("Produto %s não está no carrinho.", productID))
	}
	return found, nil
}
