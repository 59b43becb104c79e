// Package pricing calcula o preço efetivo de um produto e os totais do pedido.
// Todas as funções são puras; valores monetários usam decimal e saem arredondados
// (half-up) em 2 casas.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// EffectivePrice aplica o percentual de desconto sobre o preço base.
func EffectivePrice(base decimal.Decimal, discount float64) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
			fmt.Sprintf("Preço base negativo: %s", base.String()), nil)
	}
	if discount < 0 || discount > 100 {
		return decimal.Zero, apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
			fmt.Sprintf("Desconto fora do intervalo [0,100]: %v", discount), nil)
	}

	if discount == 0 {
		return base.Round(moneyPlaces), nil
	}
	off := base.Mul(decimal.NewFromFloat(discount)).Div(hundred)
	return base.Sub(off).Round(moneyPlaces), nil
}

// Subtotal soma price × quantity de todas as linhas.
func Subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// EligibleSubtotal soma apenas as linhas do tipo de produto alvo da política.
func EligibleSubtotal(items []domain.CartItem, policy *domain.CouponPolicy) decimal.Decimal {
	total := decimal.Zero
	if policy == nil {
		return total
	}
	for _, it := range items {
		if it.ProductType == policy.ProductType {
			total = total.Add(it.LineTotal())
		}
	}
	return total
}

// ComputeTotals compõe subtotal, frete e desconto da política ativa (se houver) no total a pagar.
// O desconto incide apenas sobre o subtotal elegível; o frete nunca é descontado.
func ComputeTotals(items []domain.CartItem, shipping decimal.Decimal, policy *domain.CouponPolicy) domain.Totals {
	subtotal := Subtotal(items)
	eligible := EligibleSubtotal(items, policy)

	discount := decimal.Zero
	if policy != nil {
		discount = eligible.Mul(decimal.NewFromFloat(policy.DiscountPercentage)).Div(hundred)
	}

	return domain.Totals{
		Subtotal:         subtotal.Round(moneyPlaces),
		EligibleSubtotal: eligible.Round(moneyPlaces),
		ShippingCost:     shipping.Round(moneyPlaces),
		DiscountAmount:   discount.Round(moneyPlaces),
		Total:            subtotal.Add(shipping).Sub(discount).Round(moneyPlaces),
	}
}

// ToCents converte um valor monetário em centavos, como exigido pelo gateway de pagamento.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
