package catalogrepo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
	"gostore/internal/repository/catalogrepo"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return m.Called(ctx, key, expiration).Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

const productsJSON = `{"data":[
  {
    "_id":"r1","title":"Solitaire Ring","price":250,"discount":10,"status":"in-stock",
    "classificationAttributes":["Size|6;7","Metal|Gold;Silver"],
    "productVariants":["6;Gold;10;250","7;Silver;broken;1","7;Gold;2;260"],
    "variantWarrantyPeriods":[365],
    "reviews":[{"rating":4},{"rating":5}],
    "imageURLs":[{"img":"r1.png","color":{"name":"Gold","clrCode":"#ffd700"}}],
    "category":{"_id":"c1","name":"Rings"},"parent":"Rings & Bands","children":"Engagement Rings",
    "brand":{"_id":"b1","name":"Lumi"},
    "additionalInformation":[{"key":"Carat Weight","value":"1 ct"}],
    "productType":"ring","warrantyPeriod":30,"createdAt":"2024-05-01T10:00:00Z"
  },
  {"_id":"bad","title":"Negative","price":-1}
]}`

const couponsJSON = `[{"couponCode":"RING10","title":"Ring Week","discountPercentage":10,
  "minimumAmount":50,"productType":"ring","endTime":"2030-01-01T00:00:00Z"}]`

func newRepo(t *testing.T, handler http.Handler, c cache.Client) *catalogrepo.CatalogRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return catalogrepo.NewCatalogRepository(catalogrepo.Options{
		BaseURL:      srv.URL + "/api/",
		HTTPClient:   srv.Client(),
		Cache:        c,
		CacheTTL:     5 * time.Minute,
		CacheTimeout: time.Second,
		MaxRetries:   2,
		NewBackOff:   func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}, logger.NewNop())
}

func TestFetchAllProducts_MissParsesAndCaches(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, "catalog:products").Return("", cache.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, "catalog:products", mock.AnythingOfType("string"), 5*time.Minute).Return(nil)

	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/all", r.URL.Path)
		w.Write([]byte(productsJSON))
	}), mockCache)

	products, err := repo.FetchAllProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1, "produto com preço negativo é descartado")
	p := products[0]
	assert.Equal(t, "r1", p.ID)
	assert.Equal(t, domain.StatusInStock, p.Status)
	require.Len(t, p.Attributes, 2)
	assert.Equal(t, []string{"Gold", "Silver"}, p.Attributes[1].Options)
	require.Len(t, p.Variants, 2, "variante mal formada é ignorada")
	assert.Equal(t, 365, p.Variants[0].WarrantyPeriod)
	assert.Equal(t, 30, p.Variants[1].WarrantyPeriod)
	assert.True(t, decimal.NewFromInt(260).Equal(p.Variants[1].Price))
	assert.Equal(t, "Gold", p.Images[0].Color.Name)
	assert.Equal(t, 4.5, p.AverageRating())
	mockCache.AssertExpectations(t)
}

func TestFetchAllProducts_CacheHitSkipsRemote(t *testing.T) {
	cached, err := json.Marshal([]domain.Product{{ID: "cached", Price: decimal.NewFromInt(5)}})
	require.NoError(t, err)

	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, "catalog:products").Return(string(cached), nil)

	var calls int32
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}), mockCache)

	products, err := repo.FetchAllProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "cached", products[0].ID)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFetchAllProducts_RetriesServerErrors(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return("", cache.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var calls int32
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(productsJSON))
	}), mockCache)

	products, err := repo.FetchAllProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchAllProducts_ClientErrorIsNotRetried(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return("", cache.ErrCacheMiss)

	var calls int32
	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}), mockCache)

	_, err := repo.FetchAllProducts(context.Background())

	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchOfferCoupons(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, "catalog:coupons").Return("", cache.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, "catalog:coupons", mock.AnythingOfType("string"), 5*time.Minute).Return(nil)

	repo := newRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/coupon", r.URL.Path)
		w.Write([]byte(couponsJSON))
	}), mockCache)

	coupons, err := repo.FetchOfferCoupons(context.Background())

	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "RING10", coupons[0].Code)
	assert.True(t, decimal.NewFromInt(50).Equal(coupons[0].MinimumAmount))
	assert.Equal(t, 2030, coupons[0].EndTime.Year())
	mockCache.AssertExpectations(t)
}
