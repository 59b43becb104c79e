package warranty_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	"gostore/internal/warranty"
)

func fixedIssuer() *warranty.Issuer {
	n := 0
	return warranty.NewIssuer(
		warranty.WithClock(func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }),
		warranty.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("w-%d", n)
		}),
	)
}

func TestIssue_OnePairPerUnit(t *testing.T) {
	item := domain.CartItem{ProductID: "p1", Price: decimal.NewFromInt(10), OrderQuantity: 3, WarrantyPeriod: 30}

	bundles := fixedIssuer().Issue("Ana Souza", item)

	require.Len(t, bundles, 3)
	for idx, b := range bundles {
		id := fmt.Sprintf("w-%d", idx+1)
		assert.Equal(t, id, b.Warranty.WarrantyID)
		assert.Equal(t, id, b.Certificate.CertificateID)
		assert.Equal(t, domain.CertificatePlaceholder, b.Certificate.CertificateURL)
		assert.Equal(t, "Ana Souza", b.Warranty.CustomerName)
		assert.Equal(t, "10/03/2025", b.Warranty.DateOfPurchase)
		assert.Equal(t, "From 10/03/2025 to 09/04/2025", b.Warranty.WarrantyPeriod)
	}
}

func TestIssue_VariantPeriodWins(t *testing.T) {
	item := domain.CartItem{
		ProductID:       "p1",
		OrderQuantity:   1,
		WarrantyPeriod:  30,
		SelectedVariant: &domain.Variant{Options: []string{"6"}, WarrantyPeriod: 365},
	}

	bundles := fixedIssuer().Issue("Ana", item)

	require.Len(t, bundles, 1)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), bundles[0].Warranty.EndsAt)
}

func TestIssue_ZeroQuantity(t *testing.T) {
	assert.Empty(t, fixedIssuer().Issue("Ana", domain.CartItem{OrderQuantity: 0}))
}

func TestIssue_DefaultGeneratorIsUnique(t *testing.T) {
	bundles := warranty.NewIssuer().Issue("Ana", domain.CartItem{OrderQuantity: 50, WarrantyPeriod: 1})

	seen := map[string]bool{}
	for _, b := range bundles {
		assert.False(t, seen[b.Warranty.WarrantyID])
		seen[b.Warranty.WarrantyID] = true
	}
	assert.Len(t, seen, 50)
}

func TestIssueLine(t *testing.T) {
	line := fixedIssuer().IssueLine("Ana", domain.CartItem{ProductID: "p9", OrderQuantity: 2, WarrantyPeriod: 7})

	assert.Equal(t, "p9", line.ProductID)
	assert.Equal(t, []string{"w-1", "w-2"}, line.WarrantyIDs)
	assert.Len(t, line.WarrantyInformation, 2)
	assert.Len(t, line.ProductCertificateInformation, 2)
}
