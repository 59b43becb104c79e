package checkout

import (
	"context"
	"net/http"

	"gostore/internal/api/httpx"
	"gostore/internal/pkg/logger"
	"gostore/internal/service/checkoutservice"
)

// CheckoutService define o contrato que o Handler espera da camada de Serviço.
type CheckoutService interface {
	Submit(ctx context.Context, sessionID string, req checkoutservice.CheckoutRequest) (checkoutservice.CheckoutResult, error)
}

// Handler expõe o envio do checkout.
type Handler struct {
	Service   CheckoutService
	Logger    logger.Logger
	responder *httpx.Responder
}

// NewHandler cria o Handler injetando o Service e o Logger.
func NewHandler(svc CheckoutService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		Logger:    log,
		responder: httpx.NewResponder(log),
	}
}

// SubmitHandler lida com a requisição POST /v1/checkout.
// @Summary Envia o pedido
// @Description Grava a entrega, revalida o cupom, emite garantias, cobra o cartão (Card) e grava o pedido.
// @Tags checkout
// @Accept json
// @Produce json
// @Param body body checkoutservice.CheckoutRequest true "Entrega e forma de pagamento"
// @Success 201 {object} checkoutservice.CheckoutResult
// @Failure 400 {object} domain.ErrorResponse "Carrinho vazio ou dados inválidos"
// @Failure 402 {object} domain.ErrorResponse "Cartão recusado"
// @Failure 409 {object} domain.ErrorResponse "Checkout já em andamento"
// @Failure 503 {object} domain.ErrorResponse "Falha ao gravar o pedido"
// @Failure 504 {object} domain.ErrorResponse "Tempo esgotado"
// @Security ApiKeyAuth
// @Router /checkout [post]
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	var req checkoutservice.CheckoutRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	result, err := h.Service.Submit(r.Context(), sessionID, req)
	if err != nil {
		h.Logger.Info("Checkout não concluído.", map[string]interface{}{
			"session_id": sessionID,
			"state":      result.State,
		})
	}
	h.responder.Respond(w, r, result, err, http.StatusCreated)
}
