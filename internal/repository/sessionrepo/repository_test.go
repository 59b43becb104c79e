package sessionrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/repository/sessionrepo"
)

// memoryCache é um cache.Client em memória que registra os TTLs gravados.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return m.err
}

func (m *memoryCache) TTL(context.Context, string) (time.Duration, error) { return -1, nil }
func (m *memoryCache) Incr(context.Context, string) (int64, error) { return 0, nil }
func (m *memoryCache) Expire(context.Context, string, time.Duration) error { return nil }
func (m *memoryCache) Ping(context.Context) error { return nil }

func TestCartRoundTrip(t *testing.T) {
	mem := newMemoryCache()
	repo := sessionrepo.NewSessionRepository(mem, 24*time.Hour, time.Second)
	ctx := context.Background()

	empty, err := repo.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	items := []domain.CartItem{{
		ProductID:       "r1",
		Title:           "Solitaire",
		Price:           decimal.RequireFromString("250.00"),
		OrderQuantity:   2,
		ProductType:     "ring",
		SelectedVariant: &domain.Variant{Options: []string{"6", "Gold"}, Stock: 10, Price: decimal.NewFromInt(250), WarrantyPeriod: 365},
	}}
	require.NoError(t, repo.SaveCart(ctx, "s1", items))
	assert.Equal(t, 24*time.Hour, mem.ttls["session:s1:cart_products"])

	loaded, err := repo.LoadCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, items[0].Price.Equal(loaded[0].Price))
	assert.Equal(t, []string{"6", "Gold"}, loaded[0].SelectedVariant.Options)

	require.NoError(t, repo.ClearCart(ctx, "s1"))
	loaded, err = repo.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCouponAndShipping(t *testing.T) {
	repo := sessionrepo.NewSessionRepository(newMemoryCache(), time.Hour, time.Second)
	ctx := context.Background()

	policy, err := repo.LoadCoupon(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, policy)

	require.NoError(t, repo.SaveCoupon(ctx, "s1", domain.CouponPolicy{Code: "RING10", DiscountPercentage: 10}))
	policy, err = repo.LoadCoupon(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, policy)
	assert.Equal(t, "RING10", policy.Code)

	require.NoError(t, repo.ClearCoupon(ctx, "s1"))
	policy, err = repo.LoadCoupon(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, policy)

	require.NoError(t, repo.SaveShipping(ctx, "s1", domain.ShippingInfo{FirstName: "Ana", ShippingOption: "express"}))
	info, err := repo.LoadShipping(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "express", info.ShippingOption)

	other, err := repo.LoadShipping(ctx, "s2")
	require.NoError(t, err)
	assert.Nil(t, other, "sessões não compartilham estado")
}

func TestCacheFailureIsPersistenceError(t *testing.T) {
	mem := newMemoryCache()
	mem.err = errors.New("connection refused")
	repo := sessionrepo.NewSessionRepository(mem, time.Hour, time.Second)

	_, err := repo.LoadCart(context.Background(), "s1")
	var persistence *apperror.PersistenceError
	assert.ErrorAs(t, err, &persistence)

	err = repo.SaveCart(context.Background(), "s1", nil)
	assert.ErrorAs(t, err, &persistence)
}
