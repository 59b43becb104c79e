package order

import (
	"context"
	"net/http"

	"gostore/internal/api/httpx"
	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
)

// OrderService define o contrato que o Handler espera da camada de Serviço.
type OrderService interface {
	Get(ctx context.Context, sessionID, orderID string) (domain.Order, error)
}

// Handler expõe a confirmação de pedidos.
type Handler struct {
	Service   OrderService
	Logger    logger.Logger
	responder *httpx.Responder
}

// NewHandler cria o Handler injetando o Service e o Logger.
func NewHandler(svc OrderService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		Logger:    log,
		responder: httpx.NewResponder(log),
	}
}

// GetOrderHandler lida com a requisição GET /v1/orders/{id}.
// @Summary Confirmação do pedido
// @Tags orders
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} domain.Order
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Security ApiKeyAuth
// @Router /orders/{id} [get]
func (h *Handler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}
	order, err := h.Service.Get(r.Context(), sessionID, r.PathValue("id"))
	h.responder.Respond(w, r, order, err, http.StatusOK)
}
