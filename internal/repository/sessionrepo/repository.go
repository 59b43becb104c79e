package sessionrepo

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyCart     = "cart_products"
	keyCoupon   = "couponInfo"
	keyShipping = "shipping_info"
)

// SessionRepository implementa domain.SessionStore no Redis. Cada sessão guarda três blobs JSON
// com TTL renovado a cada gravação; a última escrita vence.
type SessionRepository struct {
	Cache        cache.Client
	TTL          time.Duration
	CacheTimeout time.Duration
}

// NewSessionRepository cria o repositório de sessão.
func NewSessionRepository(c cache.Client, ttl, cacheTimeout time.Duration) *SessionRepository {
	if cacheTimeout <= 0 {
		cacheTimeout = 2 * time.Second
	}
	return &SessionRepository{Cache: c, TTL: ttl, CacheTimeout: cacheTimeout}
}

func sessionKey(sessionID, name string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, name)
}

// LoadCart devolve as linhas do carrinho; carrinho inexistente é vazio.
func (r *SessionRepository) LoadCart(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	if _, err := r.load(ctx, sessionKey(sessionID, keyCart), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCart grava o carrinho.
func (r *SessionRepository) SaveCart(ctx context.Context, sessionID string, items []domain.CartItem) error {
	return r.save(ctx, sessionKey(sessionID, keyCart), items)
}

// ClearCart remove o carrinho.
func (r *SessionRepository) ClearCart(ctx context.Context, sessionID string) error {
	return r.remove(ctx, sessionKey(sessionID, keyCart))
}

// LoadCoupon devolve a política ativa, ou nil.
func (r *SessionRepository) LoadCoupon(ctx context.Context, sessionID string) (*domain.CouponPolicy, error) {
	var policy domain.CouponPolicy
	found, err := r.load(ctx, sessionKey(sessionID, keyCoupon), &policy)
	if err != nil || !found {
		return nil, err
	}
	return &policy, nil
}

// SaveCoupon grava a política ativa.
func (r *SessionRepository) SaveCoupon(ctx context.Context, sessionID string, policy domain.CouponPolicy) error {
	return r.save(ctx, sessionKey(sessionID, keyCoupon), policy)
}

// ClearCoupon remove a política ativa.
func (r *SessionRepository) ClearCoupon(ctx context.Context, sessionID string) error {
	return r.remove(ctx, sessionKey(sessionID, keyCoupon))
}

// LoadShipping devolve os dados de entrega salvos, ou nil.
func (r *SessionRepository) LoadShipping(ctx context.Context, sessionID string) (*domain.ShippingInfo, error) {
	var info domain.ShippingInfo
	found, err := r.load(ctx, sessionKey(sessionID, keyShipping), &info)
	if err != nil || !found {
		return nil, err
	}
	return &info, nil
}

// SaveShipping grava os dados de entrega.
func (r *SessionRepository) SaveShipping(ctx context.Context, sessionID string, info domain.ShippingInfo) error {
	return r.save(ctx, sessionKey(sessionID, keyShipping), info)
}

func (r *SessionRepository) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.CacheTimeout)
	defer cancel()

	raw, err := r.Cache.Get(ctx, key)
	if err == cache.ErrCacheMiss {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewPersistenceError("falha ao ler a sessão", err)
	}
	if err := json.UnmarshalFromString(raw, dst); err != nil {
		return false, apperror.NewInternalError(fmt.Sprintf("sessão corrompida em %s", key), err)
	}
	return true, nil
}

func (r *SessionRepository) save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.MarshalToString(value)
	if err != nil {
		return apperror.NewInternalError("falha ao serializar a sessão", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.CacheTimeout)
	defer cancel()
	if err := r.Cache.Set(ctx, key, payload, r.TTL); err != nil {
		return apperror.NewPersistenceError("falha ao gravar a sessão", err)
	}
	return nil
}

func (r *SessionRepository) remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.CacheTimeout)
	defer cancel()
	if err := r.Cache.Delete(ctx, key); err != nil {
		return apperror.NewPersistenceError("falha ao limpar a sessão", err)
	}
	return nil
}
