package catalogrepo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	productsPath = "/product/all"
	couponsPath  = "/coupon"

	productsCacheKey = "catalog:products"
	couponsCacheKey  = "catalog:coupons"

	maxBodyBytes = 32 << 20
)

// Options agrupa as dependências e limites do repositório.
type Options struct {
	BaseURL      string
	HTTPClient   *http.Client
	Cache        cache.Client
	CacheTTL     time.Duration
	CacheTimeout time.Duration
	MaxRetries   uint64
	// NewBackOff permite trocar a política de retry (testes usam backoff.ZeroBackOff).
	NewBackOff func() backoff.BackOff
}

// CatalogRepository implementa domain.CatalogRepository sobre a API HTTP do catálogo,
// com cache-aside no Redis dos registros já interpretados.
type CatalogRepository struct {
	baseURL      string
	client       *http.Client
	cache        cache.Client
	cacheTTL     time.Duration
	cacheTimeout time.Duration
	maxRetries   uint64
	newBackOff   func() backoff.BackOff
	log          logger.Logger
}

// NewCatalogRepository cria o repositório.
func NewCatalogRepository(opts Options, log logger.Logger) *CatalogRepository {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.NewBackOff == nil {
		opts.NewBackOff = func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 200 * time.Millisecond
			bo.MaxElapsedTime = 5 * time.Second
			return bo
		}
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.CacheTimeout <= 0 {
		opts.CacheTimeout = 2 * time.Second
	}
	return &CatalogRepository{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		client:       opts.HTTPClient,
		cache:        opts.Cache,
		cacheTTL:     opts.CacheTTL,
		cacheTimeout: opts.CacheTimeout,
		maxRetries:   opts.MaxRetries,
		newBackOff:   opts.NewBackOff,
		log:          log,
	}
}

// FetchAllProducts devolve o catálogo completo já tipado.
func (r *CatalogRepository) FetchAllProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if r.readCache(ctx, productsCacheKey, &products) {
		metrics.CatalogFetches.WithLabelValues("products", "cache", "hit").Inc()
		return products, nil
	}

	var envelope productEnvelope
	if err := r.fetch(ctx, productsPath, &envelope); err != nil {
		metrics.CatalogFetches.WithLabelValues("products", "remote", "error").Inc()
		return nil, err
	}
	metrics.CatalogFetches.WithLabelValues("products", "remote", "ok").Inc()

	products = make([]domain.Product, 0, len(envelope.Data))
	for _, dto := range envelope.Data {
		if dto.ID == "" || dto.Price.IsNegative() {
			r.log.Warn("Produto descartado na ingestão do catálogo", map[string]interface{}{
				"product_id": dto.ID,
				"price":      dto.Price.String(),
			})
			metrics.CatalogSkippedEntries.WithLabelValues("product").Inc()
			continue
		}
		product, skipped := dto.toDomain()
		for _, s := range skipped {
			r.log.Warn("Entrada mal formada ignorada", map[string]interface{}{
				"product_id": product.ID,
				"field":      s.Field,
				"value":      s.Value,
				"reason":     s.Msg,
			})
			metrics.CatalogSkippedEntries.WithLabelValues(s.Field).Inc()
		}
		products = append(products, product)
	}

	r.writeCache(ctx, productsCacheKey, products)
	return products, nil
}

// FetchOfferCoupons devolve a lista de cupons ofertados.
func (r *CatalogRepository) FetchOfferCoupons(ctx context.Context) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	if r.readCache(ctx, couponsCacheKey, &coupons) {
		metrics.CatalogFetches.WithLabelValues("coupons", "cache", "hit").Inc()
		return coupons, nil
	}

	var dtos []couponDTO
	if err := r.fetch(ctx, couponsPath, &dtos); err != nil {
		metrics.CatalogFetches.WithLabelValues("coupons", "remote", "error").Inc()
		return nil, err
	}
	metrics.CatalogFetches.WithLabelValues("coupons", "remote", "ok").Inc()

	coupons = make([]domain.Coupon, 0, len(dtos))
	for _, dto := range dtos {
		coupons = append(coupons, dto.toDomain())
	}

	r.writeCache(ctx, couponsCacheKey, coupons)
	return coupons, nil
}

// fetch faz GET em path com retry exponencial. Respostas 4xx não são repetidas.
func (r *CatalogRepository) fetch(ctx context.Context, path string, dst interface{}) error {
	url := r.baseURL + path
	attempt := 0

	operation := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			statusErr := fmt.Errorf("catálogo respondeu %d em %s", resp.StatusCode, path)
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
			return backoff.Permanent(fmt.Errorf("resposta do catálogo inválida em %s: %w", path, err))
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		r.log.Warn("Falha ao consultar o catálogo; nova tentativa agendada", map[string]interface{}{
			"path":    path,
			"attempt": attempt,
			"wait_ms": wait.Milliseconds(),
			"error":   err.Error(),
		})
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if ctx.Err() != nil {
			return apperror.NewCancelledError("consulta ao catálogo cancelada", ctx.Err())
		}
		return apperror.NewInternalError("catálogo indisponível", err)
	}
	return nil
}

func (r *CatalogRepository) readCache(ctx context.Context, key string, dst interface{}) bool {
	ctx, cancel := context.WithTimeout(ctx, r.cacheTimeout)
	defer cancel()

	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss {
			r.log.Warn("Falha ao ler do cache; seguindo para o catálogo remoto", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}
	if err := json.UnmarshalFromString(raw, dst); err != nil {
		r.log.Warn("Entrada de cache corrompida", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return true
}

func (r *CatalogRepository) writeCache(ctx context.Context, key string, value interface{}) {
	payload, err := json.MarshalToString(value)
	if err != nil {
		r.log.Error("Falha ao serializar catálogo para cache", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.cacheTimeout)
	defer cancel()
	if err := r.cache.Set(ctx, key, payload, r.cacheTTL); err != nil {
		r.log.Warn("Falha ao gravar no cache", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
