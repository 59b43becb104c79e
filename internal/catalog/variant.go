package catalog

import (
	"fmt"
	"slices"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
)

// SelectionComplete indica se há exatamente um valor não vazio para cada atributo declarado.
func SelectionComplete(attrs []domain.ClassificationAttribute, selection domain.SelectedAttributes) bool {
	if len(selection) != len(attrs) {
		return false
	}
	for _, attr := range attrs {
		if selection[attr.Name] == "" {
			return false
		}
	}
	return true
}

// ResolveVariant devolve a primeira variante, na ordem de codificação, cujas opções coincidem
// posição a posição com a seleção. Seleções incompletas nunca resolvem.
func ResolveVariant(attrs []domain.ClassificationAttribute, variants []domain.Variant, selection domain.SelectedAttributes) (*domain.Variant, bool) {
	if !SelectionComplete(attrs, selection) {
		return nil, false
	}

	for i := range variants {
		if matchesSelection(attrs, variants[i], selection) {
			found := variants[i]
			found.Options = append([]string(nil), variants[i].Options...)
			return &found, true
		}
	}
	return nil, false
}

func matchesSelection(attrs []domain.ClassificationAttribute, v domain.Variant, selection domain.SelectedAttributes) bool {
	if len(v.Options) != len(attrs) {
		return false
	}
	for pos, attr := range attrs {
		if v.Options[pos] != selection[attr.Name] {
			return false
		}
	}
	return true
}

// ValidateSelection rejeita nomes de atributo não declarados e opções fora da lista declarada.
// Seleções parciais são válidas (a escolha é incremental).
func ValidateSelection(attrs []domain.ClassificationAttribute, selection domain.SelectedAttributes) error {
	declared := make(map[string]domain.ClassificationAttribute, len(attrs))
	for _, attr := range attrs {
		declared[attr.Name] = attr
	}

	for name, value := range selection {
		attr, ok := declared[name]
		if !ok {
			return apperror.NewReasonedValidationError(apperror.ReasonMalformedSelection,
				fmt.Sprintf("Atributo '%s' não existe para este produto.", name), nil)
		}
		if !slices.Contains(attr.Options, value) {
			return apperror.NewReasonedValidationError(apperror.ReasonMalformedSelection,
				fmt.Sprintf("Opção '%s' inválida para o atributo '%s'.", value, name), nil)
		}
	}
	return nil
}
