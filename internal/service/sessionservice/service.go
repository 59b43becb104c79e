package sessionservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

// TokenIssuer assina o token da sessão.
type TokenIssuer interface {
	GenerateToken(sessionID, role string) (string, time.Time, error)
}

// CartInitializer abre o carrinho vazio da nova sessão.
type CartInitializer interface {
	SaveCart(ctx context.Context, sessionID string, items []domain.CartItem) error
}

// Service cria sessões de convidado.
type Service struct {
	tokens TokenIssuer
	carts  CartInitializer
	role   string
	newID  func() string
	logger logger.Logger
}

// NewService cria o serviço de sessão. role é o papel gravado no token.
func NewService(tokens TokenIssuer, carts CartInitializer, role string, log logger.Logger) *Service {
	return &Service{
		tokens: tokens,
		carts:  carts,
		role:   role,
		newID:  func() string { return uuid.New().String() },
		logger: log,
	}
}

// Create abre uma sessão com carrinho vazio e devolve o token que a identifica.
func (s *Service) Create(ctx context.Context) (domain.Session, error) {
	id := s.newID()

	if err := s.carts.SaveCart(ctx, id, []domain.CartItem{}); err != nil {
		return domain.Session{}, err
	}

	signed, expiresAt, err := s.tokens.GenerateToken(id, s.role)
	if err != nil {
		s.logger.Error("Falha ao gerar token de sessão.", err)
		return domain.Session{}, apperror.NewInternalError("falha ao gerar token de sessão", err)
	}

	s.logger.Info("Sessão de convidado criada.", map[string]interface{}{
		"session_id": id,
		"expires_at": expiresAt,
	})
	return domain.Session{ID: id, Token: signed, ExpiresAt: expiresAt}, nil
}
