package session

import (
	"context"
	"net/http"

	"gostore/internal/api/httpx"
	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
)

// SessionService define o contrato que o Handler espera da camada de Serviço.
type SessionService interface {
	Create(ctx context.Context) (domain.Session, error)
}

// Handler emite sessões de convidado.
type Handler struct {
	Service   SessionService
	Logger    logger.Logger
	responder *httpx.Responder
}

// NewHandler cria o Handler injetando o Service e o Logger.
func NewHandler(svc SessionService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		Logger:    log,
		responder: httpx.NewResponder(log),
	}
}

// CreateSessionHandler lida com a requisição POST /v1/sessions.
// @Summary Abre uma sessão de convidado
// @Description Devolve o token Bearer que identifica o carrinho.
// @Tags sessions
// @Produce json
// @Success 201 {object} domain.Session
// @Failure 503 {object} domain.ErrorResponse "Cache de sessão indisponível"
// @Router /sessions [post]
func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.Create(r.Context())
	h.responder.Respond(w, r, session, err, http.StatusCreated)
}
