package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/catalog"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
)

func ringFixture(t *testing.T) ([]domain.ClassificationAttribute, []domain.Variant) {
	t.Helper()

	var attrs []domain.ClassificationAttribute
	for _, raw := range []string{"Size|6;7", "Metal|Gold;Silver"} {
		attr, err := catalog.ParseAttribute(raw)
		require.NoError(t, err)
		attrs = append(attrs, attr)
	}

	var variants []domain.Variant
	for _, raw := range []string{"7;Silver;3;180", "6;Gold;10;250", "6;Gold;1;999"} {
		v, err := catalog.ParseVariant(raw, len(attrs))
		require.NoError(t, err)
		variants = append(variants, v)
	}
	return attrs, variants
}

func TestResolveVariant_CompleteSelection(t *testing.T) {
	attrs, variants := ringFixture(t)

	v, ok := catalog.ResolveVariant(attrs, variants, domain.SelectedAttributes{"Size": "6", "Metal": "Gold"})

	require.True(t, ok)
	assert.Equal(t, []string{"6", "Gold"}, v.Options)
	assert.Equal(t, 10, v.Stock)
	assert.True(t, decimal.NewFromInt(250).Equal(v.Price))
}

func TestResolveVariant_IncompleteSelectionFailsClosed(t *testing.T) {
	attrs, variants := ringFixture(t)

	selections := []domain.SelectedAttributes{
		nil,
		{},
		{"Size": "6"},
		{"Size": "6", "Metal": ""},
		{"Size": "6", "Colour": "Gold"},
		{"Size": "6", "Metal": "Gold", "Extra": "x"},
	}
	for _, sel := range selections {
		v, ok := catalog.ResolveVariant(attrs, variants, sel)
		assert.False(t, ok, "seleção %v", sel)
		assert.Nil(t, v)
	}
}

func TestResolveVariant_PositionalBinding(t *testing.T) {
	// "7" aparece como opção dos dois atributos; só a posição correta pode casar.
	attrs := []domain.ClassificationAttribute{
		{Name: "Size", Options: []string{"6", "7"}},
		{Name: "Band", Options: []string{"6", "7"}},
	}
	variants := []domain.Variant{
		{Options: []string{"6", "7"}, Stock: 1, Price: decimal.NewFromInt(10)},
		{Options: []string{"7", "6"}, Stock: 2, Price: decimal.NewFromInt(20)},
	}

	v, ok := catalog.ResolveVariant(attrs, variants, domain.SelectedAttributes{"Size": "7", "Band": "6"})

	require.True(t, ok)
	assert.Equal(t, 2, v.Stock)
}

func TestResolveVariant_NoMatch(t *testing.T) {
	attrs, variants := ringFixture(t)

	v, ok := catalog.ResolveVariant(attrs, variants, domain.SelectedAttributes{"Size": "7", "Metal": "Gold"})

	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestResolveVariant_ReturnsCopy(t *testing.T) {
	attrs, variants := ringFixture(t)

	v, ok := catalog.ResolveVariant(attrs, variants, domain.SelectedAttributes{"Size": "6", "Metal": "Gold"})
	require.True(t, ok)
	v.Options[0] = "changed"

	assert.Equal(t, "6", variants[1].Options[0])
}

func TestValidateSelection(t *testing.T) {
	attrs, _ := ringFixture(t)

	assert.NoError(t, catalog.ValidateSelection(attrs, domain.SelectedAttributes{"Size": "6"}))

	err := catalog.ValidateSelection(attrs, domain.SelectedAttributes{"Stone": "Ruby"})
	require.Error(t, err)
	assert.Equal(t, apperror.ReasonMalformedSelection, apperror.ReasonOf(err))

	err = catalog.ValidateSelection(attrs, domain.SelectedAttributes{"Metal": "Bronze"})
	require.Error(t, err)
	assert.Equal(t, apperror.ReasonMalformedSelection, apperror.ReasonOf(err))
}

func TestParseAttribute_Malformed(t *testing.T) {
	for _, raw := range []string{"", "Size", "|6;7", "Size|", "Size| ; "} {
		_, err := catalog.ParseAttribute(raw)
		var shapeErr *apperror.DataShapeError
		assert.ErrorAs(t, err, &shapeErr, "entrada %q", raw)
	}
}

func TestParseVariant_Malformed(t *testing.T) {
	cases := []string{
		"6;Gold;10",       // falta o preço
		"6;Gold;10;250;x", // token a mais
		"6;Gold;-1;250",   // estoque negativo
		"6;Gold;ten;250",  // estoque não numérico
		"6;Gold;10;abc",   // preço inválido
		"6;Gold;10;-5.00", // preço negativo
	}
	for _, raw := range cases {
		_, err := catalog.ParseVariant(raw, 2)
		var shapeErr *apperror.DataShapeError
		assert.ErrorAs(t, err, &shapeErr, "entrada %q", raw)
	}
}

func TestParseMeasure(t *testing.T) {
	v, ok := catalog.ParseMeasure("1.5 ct")
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	v, ok = catalog.ParseMeasure(" 2ct")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = catalog.ParseMeasure("n/a")
	assert.False(t, ok)
}
