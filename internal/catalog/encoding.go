// Package catalog contém as regras puras do catálogo: interpretação das codificações de
// atributos e variantes, resolução de variante por seleção e o pipeline de filtros da vitrine.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
)

const (
	attributeSeparator = "|"
	tokenSeparator     = ";"
)

// ParseAttribute interpreta a codificação "Nome|opção1;opção2".
func ParseAttribute(raw string) (domain.ClassificationAttribute, error) {
	name, options, ok := strings.Cut(raw, attributeSeparator)
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return domain.ClassificationAttribute{}, apperror.NewDataShapeError("classificationAttributes", raw, "esperado 'Nome|opção;opção'")
	}

	attr := domain.ClassificationAttribute{Name: name}
	for _, opt := range strings.Split(options, tokenSeparator) {
		if opt = strings.TrimSpace(opt); opt != "" {
			attr.Options = append(attr.Options, opt)
		}
	}
	if len(attr.Options) == 0 {
		return domain.ClassificationAttribute{}, apperror.NewDataShapeError("classificationAttributes", raw, "atributo sem opções")
	}
	return attr, nil
}

// ParseVariant interpreta "op1;op2;...;estoque;preço". O número de tokens deve ser
// exatamente o número de atributos declarados + 2.
func ParseVariant(raw string, declared int) (domain.Variant, error) {
	tokens := strings.Split(raw, tokenSeparator)
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	if len(tokens) != declared+2 {
		return domain.Variant{}, apperror.NewDataShapeError("productVariants", raw,
			fmt.Sprintf("esperados %d tokens, encontrados %d", declared+2, len(tokens)))
	}

	stock, err := strconv.Atoi(tokens[declared])
	if err != nil || stock < 0 {
		return domain.Variant{}, apperror.NewDataShapeError("productVariants", raw, "estoque inválido")
	}
	price, err := decimal.NewFromString(tokens[declared+1])
	if err != nil || price.IsNegative() {
		return domain.Variant{}, apperror.NewDataShapeError("productVariants", raw, "preço inválido")
	}

	return domain.Variant{
		Options: append([]string(nil), tokens[:declared]...),
		Stock:   stock,
		Price:   price,
	}, nil
}

// ParseMeasure extrai o número inicial de valores como "1.5 ct" ou "2ct".
func ParseMeasure(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
