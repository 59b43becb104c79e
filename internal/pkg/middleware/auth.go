package middleware

import (
	"context"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto do pacote.
type ContextKey int

const (
	SessionClaimsKey ContextKey = iota
)

// SessionClaims são os dados da sessão extraídos do token e anexados ao contexto.
type SessionClaims struct {
	SessionID string
	Role      string
}

// TokenValidator é o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.SessionClaims, error)
}

// NewAuthMiddleware valida o Bearer token e anexa SessionClaims ao contexto.
func NewAuthMiddleware(tokens TokenValidator) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				writeError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				writeError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			ctx := WithSessionClaims(r.Context(), SessionClaims{SessionID: claims.SessionID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// WithSessionClaims anexa as claims ao contexto (também usado em testes de handler).
func WithSessionClaims(ctx context.Context, claims SessionClaims) context.Context {
	return context.WithValue(ctx, SessionClaimsKey, claims)
}

// GetSessionClaimsFromContext extrai as claims anexadas pelo middleware.
func GetSessionClaimsFromContext(ctx context.Context) (SessionClaims, bool) {
	claims, ok := ctx.Value(SessionClaimsKey).(SessionClaims)
	return claims, ok
}

func writeError(w http.ResponseWriter, err apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus())
	jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     err.HTTPStatus(),
		Category: err.Category(),
		Message:  err.Error(),
	})
}
