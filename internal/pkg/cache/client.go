package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client é o contrato do cache usado pelos repositórios (catálogo, sessão) e pelo rate limiter.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
}

// ErrCacheMiss é retornado quando a chave não existe.
var ErrCacheMiss = redis.Nil

// RedisClient implementa Client sobre o go-redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient conecta no Redis em addr. A disponibilidade é verificada por quem chama (Ping).
func NewRedisClient(addr string) *RedisClient {
	return &RedisClient{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping verifica a conexão.
func (c *RedisClient) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get recupera o valor da chave, ou ErrCacheMiss.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// TTL devolve o tempo restante da chave. Valores negativos indicam chave sem expiração (-1)
// ou inexistente (-2).
func (c *RedisClient) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.rdb.TTL(ctx, key).Result()
}

// Set grava o valor com expiração (0 = sem expiração).
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Incr incrementa o contador e devolve o novo valor.
func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// Expire renova o TTL da chave.
func (c *RedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.rdb.Expire(ctx, key, expiration).Err()
}

// Delete remove as chaves (chaves inexistentes são ignoradas).
func (c *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close encerra o pool de conexões.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
