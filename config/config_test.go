package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShippingRates(t *testing.T) {
	rates, err := ParseShippingRates(" Standard:20, express:60.5 ,pickup:0,")
	require.NoError(t, err)

	assert.Len(t, rates, 3)
	assert.Equal(t, "20", rates["standard"].String())
	assert.Equal(t, "60.5", rates["express"].String())
	assert.True(t, rates["pickup"].IsZero())
}

func TestParseShippingRates_Invalid(t *testing.T) {
	for _, raw := range []string{"standard", ":10", "express:abc", "pickup:-1"} {
		_, err := ParseShippingRates(raw)
		assert.Error(t, err, raw)
	}
}

func TestLoadConfig_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gostore?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "segredo")
	t.Setenv("PAYMENT_TIMEOUT_SEC", "7")
	t.Setenv("PAGE_SIZE", "not-a-number")
	t.Setenv("SHIPPING_RATES", "broken")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, 12, cfg.PageSize)
	assert.Equal(t, "Carat Weight", cfg.SecondaryAttribute)
	assert.Equal(t, "20", cfg.ShippingRates["standard"].String())
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
}
