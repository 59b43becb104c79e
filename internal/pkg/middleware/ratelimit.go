package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
)

// RateLimiter limita as requisições por IP a limit por janela fixa de duração period, com o contador no cache.
// Falhas do cache não bloqueiam a requisição.
func RateLimiter(client cache.Client, limit int, period time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.Incr(ctx, key)
			if err != nil {
				log.Warn("Rate limiter indisponível; requisição liberada.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := client.Expire(ctx, key, period); err != nil {
					log.Warn("Falha ao definir janela do rate limiter.", map[string]interface{}{"error": err.Error()})
				}
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				// Um Expire perdido deixaria o IP bloqueado para sempre.
				ensureWindow(ctx, client, key, period, log)
				w.Header().Set("Retry-After", strconv.Itoa(int(period.Seconds())))
				w.Header().Set("X-RateLimit-Remaining", "0")
				writeStatus(w, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			next.ServeHTTP(w, r)
		})
	}
}

func ensureWindow(ctx context.Context, client cache.Client, key string, period time.Duration, log logger.Logger) {
	ttl, err := client.TTL(ctx, key)
	if err != nil || ttl >= 0 {
		return
	}
	if err := client.Expire(ctx, key, period); err != nil {
		log.Warn("Falha ao restaurar janela do rate limiter.", map[string]interface{}{"error": err.Error()})
	}
}

func writeStatus(w http.ResponseWriter, status int, category, msg string) {
	writeError(w, &statusError{status: status, category: category, msg: msg})
}

// statusError é um AppError ad hoc para respostas que não vêm da camada de serviço.
type statusError struct {
	status   int
	category string
	msg      string
}

func (e *statusError) Error() string    { return e.msg }
func (e *statusError) Category() string { return e.category }
func (e *statusError) HTTPStatus() int  { return e.status }
func (e *statusError) Unwrap() error    { return nil }

var _ apperror.AppError = (*statusError)(nil)
