// Package coupon valida códigos de cupom contra a lista de ofertas e decide quando
// uma política de desconto ativa deixa de valer.
package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
)

// Sentinelas encapsuladas nos ValidationError devolvidos por Validate.
var (
	ErrNotFound     = errors.New("coupon not found")
	ErrExpired      = errors.New("coupon expired")
	ErrBelowMinimum = errors.New("subtotal below coupon minimum")
)

// Lookup procura o cupom pelo código exato e confere se ainda está vigente.
func Lookup(code string, coupons []domain.Coupon, now time.Time) (domain.Coupon, error) {
	if strings.TrimSpace(code) == "" {
		return domain.Coupon{}, apperror.NewReasonedValidationError(apperror.ReasonCouponNotFound,
			"Please Input a Coupon Code!", ErrNotFound)
	}

	var found *domain.Coupon
	for i := range coupons {
		if coupons[i].Code == code {
			found = &coupons[i]
			break
		}
	}
	if found == nil {
		return domain.Coupon{}, apperror.NewReasonedValidationError(apperror.ReasonCouponNotFound,
			"Please Input a Valid Coupon!", ErrNotFound)
	}

	if now.After(found.EndTime) {
		return domain.Coupon{}, apperror.NewReasonedValidationError(apperror.ReasonCouponExpired,
			"This coupon is not valid!", ErrExpired)
	}
	return *found, nil
}

// Validate procura o cupom pelo código exato e verifica validade e valor mínimo.
// A ordem das verificações é fixa: existência, expiração, mínimo.
func Validate(code string, coupons []domain.Coupon, subtotal decimal.Decimal, now time.Time) (domain.CouponPolicy, error) {
	found, err := Lookup(code, coupons, now)
	if err != nil {
		return domain.CouponPolicy{}, err
	}

	if subtotal.LessThan(found.MinimumAmount) {
		return domain.CouponPolicy{}, apperror.NewReasonedValidationError(apperror.ReasonBelowMinimum,
			fmt.Sprintf("Minimum %s USD required for Apply this coupon!", found.MinimumAmount.String()), ErrBelowMinimum)
	}

	return domain.CouponPolicy{
		Code:               found.Code,
		Title:              found.Title,
		DiscountPercentage: found.DiscountPercentage,
		MinimumAmount:      found.MinimumAmount,
		ProductType:        found.ProductType,
		Message:            fmt.Sprintf("Your Coupon %s is Applied on %s productType!", found.Title, found.ProductType),
	}, nil
}

// ShouldInvalidate indica se a política ativa deve ser descartada após uma mudança no carrinho.
func ShouldInvalidate(policy domain.CouponPolicy, discountAmount, subtotal decimal.Decimal, cartEmpty bool) bool {
	if cartEmpty {
		return true
	}
	return policy.MinimumAmount.Sub(discountAmount).GreaterThan(subtotal)
}
