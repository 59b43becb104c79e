package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem é uma linha do carrinho da sessão.
// Price é o preço unitário no momento da inclusão (preço da variante ou preço efetivo com desconto).
type CartItem struct {
	ProductID          string             `json:"productId"`
	Title              string             `json:"title"`
	Price              decimal.Decimal    `json:"price"`
	OrderQuantity      int                `json:"orderQuantity"`
	ProductType        string             `json:"productType"`
	SelectedVariant    *Variant           `json:"selectedVariant,omitempty"`
	SelectedAttributes SelectedAttributes `json:"selectedAttributes,omitempty"`
	WarrantyPeriod     int                `json:"warrantyPeriod"`
}

// LineTotal devolve price × quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.OrderQuantity)))
}

// EffectiveWarrantyPeriod usa o período da variante selecionada, se houver.
func (i CartItem) EffectiveWarrantyPeriod() int {
	if i.SelectedVariant != nil {
		return i.SelectedVariant.WarrantyPeriod
	}
	return i.WarrantyPeriod
}

// SameLine indica se duas linhas representam o mesmo produto e a mesma variante.
func (i CartItem) SameLine(other CartItem) bool {
	if i.ProductID != other.ProductID {
		return false
	}
	if i.SelectedVariant == nil || other.SelectedVariant == nil {
		return i.SelectedVariant == nil && other.SelectedVariant == nil
	}
	if len(i.SelectedVariant.Options) != len(other.SelectedVariant.Options) {
		return false
	}
	for idx := range i.SelectedVariant.Options {
		if i.SelectedVariant.Options[idx] != other.SelectedVariant.Options[idx] {
			return false
		}
	}
	return true
}

// CouponPolicy é a política de desconto ativa na sessão (cacheada como "couponInfo").
type CouponPolicy struct {
	Code               string          `json:"couponCode"`
	Title              string          `json:"title"`
	DiscountPercentage float64         `json:"discountPercentage"`
	MinimumAmount      decimal.Decimal `json:"minimumAmount"`
	ProductType        string          `json:"productType"`
	Message            string          `json:"message"`
}

// Totals é o resultado do cálculo de total do pedido.
type Totals struct {
	Subtotal         decimal.Decimal `json:"subTotal"`
	EligibleSubtotal decimal.Decimal `json:"eligibleSubtotal"`
	ShippingCost     decimal.Decimal `json:"shippingCost"`
	DiscountAmount   decimal.Decimal `json:"discount"`
	Total            decimal.Decimal `json:"totalAmount"`
}

// CartSummary é a visão do carrinho com totais recalculados.
type CartSummary struct {
	Items          []CartItem    `json:"items"`
	Coupon         *CouponPolicy `json:"coupon,omitempty"`
	ShippingOption string        `json:"shippingOption,omitempty"`
	Totals         Totals        `json:"totals"`
}

// ShippingInfo são os dados de entrega informados no checkout.
type ShippingInfo struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Country        string `json:"country"`
	Address        string `json:"address"`
	City           string `json:"city"`
	ZipCode        string `json:"zipCode"`
	ContactNo      string `json:"contactNo"`
	Email          string `json:"email"`
	OrderNote      string `json:"orderNote"`
	ShippingOption string `json:"shippingOption"`
}

// FullName devolve "first last".
func (s ShippingInfo) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// --- Contratos ---

// SessionStore é o cache durável da sessão (equivalente ao localStorage do cliente).
// Chaves lógicas: cart_products, couponInfo e shipping_info.
type SessionStore interface {
	LoadCart(ctx context.Context, sessionID string) ([]CartItem, error)
	SaveCart(ctx context.Context, sessionID string, items []CartItem) error
	ClearCart(ctx context.Context, sessionID string) error

	LoadCoupon(ctx context.Context, sessionID string) (*CouponPolicy, error)
	SaveCoupon(ctx context.Context, sessionID string, policy CouponPolicy) error
	ClearCoupon(ctx context.Context, sessionID string) error

	LoadShipping(ctx context.Context, sessionID string) (*ShippingInfo, error)
	SaveShipping(ctx context.Context, sessionID string, info ShippingInfo) error
}

// Session identifica um carrinho de convidado.
type Session struct {
	ID        string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
