package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleGuest é o único papel emitido: carrinhos de convidado.
const RoleGuest = "guest"

const issuer = "GoStore-API"

// SessionClaims identifica a sessão de carrinho dona do token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Service assina e valida tokens HS256.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewService cria o serviço de tokens.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// Expiry devolve a validade dos tokens emitidos.
func (s *Service) Expiry() time.Duration { return s.expiry }

// GenerateToken emite um token para a sessão e devolve também o instante de expiração.
func (s *Service) GenerateToken(sessionID, role string) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.expiry)

	claims := SessionClaims{
		SessionID: sessionID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    issuer,
			Subject:   sessionID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken valida assinatura, emissor e validade, e devolve as claims.
func (s *Service) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("token não é válido")
	}
	if claims.SessionID == "" {
		return nil, errors.New("token sem sessão")
	}
	return claims, nil
}
