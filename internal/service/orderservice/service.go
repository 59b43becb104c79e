package orderservice

import (
	"context"
	"fmt"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

// Service expõe a confirmação do pedido ao dono da sessão.
type Service struct {
	repo   domain.OrderRepository
	logger logger.Logger
}

// NewService cria o serviço de pedidos.
func NewService(repo domain.OrderRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// Get devolve o pedido se ele pertence à sessão. Pedido de outra sessão é tratado como inexistente.
func (s *Service) Get(ctx context.Context, sessionID, orderID string) (domain.Order, error) {
	if orderID == "" {
		return domain.Order{}, apperror.NewReasonedValidationError(apperror.ReasonInvalidInput, "ID do pedido é obrigatório.", nil)
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.UserID != sessionID {
		s.logger.Warn("Acesso a pedido de outra sessão.", map[string]interface{}{
			"session_id": sessionID,
			"order_id":   orderID,
		})
		return domain.Order{}, apperror.NewNotFoundError(fmt.Sprintf("Pedido %s não encontrado.", orderID))
	}
	return order, nil
}
