package cart

import (
	"context"
	"net/http"

	"gostore/internal/api/httpx"
	"gostore/internal/domain"
	"gostore/internal/pkg/logger"
	"gostore/internal/service/cartservice"
)

// CartService define o contrato que o Handler espera da camada de Serviço.
type CartService interface {
	Summary(ctx context.Context, sessionID, shippingOption string) (domain.CartSummary, error)
	AddItem(ctx context.Context, sessionID string, req cartservice.AddItemRequest) (domain.CartSummary, error)
	UpdateQuantity(ctx context.Context, sessionID, productID, variant string, quantity int) (domain.CartSummary, error)
	RemoveItem(ctx context.Context, sessionID, productID, variant string) (domain.CartSummary, error)
	Clear(ctx context.Context, sessionID string) error
	ApplyCoupon(ctx context.Context, sessionID, code string) (domain.CartSummary, error)
	RemoveCoupon(ctx context.Context, sessionID string) (domain.CartSummary, error)
}

// Handler agrupa os handlers do carrinho. Todas as rotas exigem sessão.
type Handler struct {
	Service   CartService
	Logger    logger.Logger
	responder *httpx.Responder
}

// NewHandler cria o Handler injetando o Service e o Logger.
func NewHandler(svc CartService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		Logger:    log,
		responder: httpx.NewResponder(log),
	}
}

// UpdateQuantityRequest é o corpo de PUT /v1/cart/items/{productID}.
type UpdateQuantityRequest struct {
	Quantity int    `json:"quantity"`
	Variant  string `json:"variant,omitempty"`
}

// CouponRequest é o corpo de POST /v1/cart/coupon.
type CouponRequest struct {
	Code string `json:"couponCode"`
}

// GetCartHandler lida com a requisição GET /v1/cart.
// @Summary Carrinho da sessão
// @Tags cart
// @Produce json
// @Success 200 {object} domain.CartSummary
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Security ApiKeyAuth
// @Router /cart [get]
func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, "")
}

// SummaryHandler lida com a requisição GET /v1/cart/summary.
// @Summary Totais do carrinho
// @Description Recalcula subtotal, frete, desconto e total; descarta o cupom que deixou de valer.
// @Tags cart
// @Produce json
// @Param shippingOption query string false "Opção de entrega"
// @Success 200 {object} domain.CartSummary
// @Failure 400 {object} domain.ErrorResponse "Opção de entrega desconhecida"
// @Security ApiKeyAuth
// @Router /cart/summary [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, r.URL.Query().Get("shippingOption"))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request, shippingOption string) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}
	summary, err := h.Service.Summary(r.Context(), sessionID, shippingOption)
	h.responder.Respond(w, r, summary, err, http.StatusOK)
}

// AddItemHandler lida com a requisição POST /v1/cart/items.
// @Summary Adiciona item ao carrinho
// @Tags cart
// @Accept json
// @Produce json
// @Param item body cartservice.AddItemRequest true "Produto, quantidade e seleção"
// @Success 201 {object} domain.CartSummary
// @Failure 400 {object} domain.ErrorResponse "Fora de estoque ou seleção incompleta"
// @Failure 404 {object} domain.ErrorResponse "Produto ou variante inexistente"
// @Security ApiKeyAuth
// @Router /cart/items [post]
func (h *Handler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	var req cartservice.AddItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	summary, err := h.Service.AddItem(r.Context(), sessionID, req)
	h.responder.Respond(w, r, summary, err, http.StatusCreated)
}

// UpdateItemHandler lida com a requisição PUT /v1/cart/items/{productID}.
// @Summary Altera a quantidade de uma linha
// @Tags cart
// @Accept json
// @Produce json
// @Param productID path string true "ID do produto"
// @Param body body UpdateQuantityRequest true "Quantidade e variante (\"6;Gold\")"
// @Success 200 {object} domain.CartSummary
// @Security ApiKeyAuth
// @Router /cart/items/{productID} [put]
func (h *Handler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	var req UpdateQuantityRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	summary, err := h.Service.UpdateQuantity(r.Context(), sessionID, r.PathValue("productID"), req.Variant, req.Quantity)
	h.responder.Respond(w, r, summary, err, http.StatusOK)
}

// RemoveItemHandler lida com a requisição DELETE /v1/cart/items/{productID}.
// @Summary Remove uma linha do carrinho
// @Tags cart
// @Produce json
// @Param productID path string true "ID do produto"
// @Param variant query string false "Variante (\"6;Gold\")"
// @Success 200 {object} domain.CartSummary
// @Security ApiKeyAuth
// @Router /cart/items/{productID} [delete]
func (h *Handler) RemoveItemHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	summary, err := h.Service.RemoveItem(r.Context(), sessionID, r.PathValue("productID"), r.URL.Query().Get("variant"))
	h.responder.Respond(w, r, summary, err, http.StatusOK)
}

// ClearCartHandler lida com a requisição DELETE /v1/cart.
// @Summary Esvazia o carrinho
// @Tags cart
// @Success 204
// @Security ApiKeyAuth
// @Router /cart [delete]
func (h *Handler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}
	h.responder.Respond(w, r, nil, h.Service.Clear(r.Context(), sessionID), http.StatusNoContent)
}

// ApplyCouponHandler lida com a requisição POST /v1/cart/coupon.
// @Summary Aplica um cupom
// @Tags cart
// @Accept json
// @Produce json
// @Param body body CouponRequest true "Código do cupom"
// @Success 200 {object} domain.CartSummary
// @Failure 400 {object} domain.ErrorResponse "Cupom inexistente, expirado ou abaixo do mínimo"
// @Security ApiKeyAuth
// @Router /cart/coupon [post]
func (h *Handler) ApplyCouponHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	var req CouponRequest
	if err := httpx.Decode(r, &req); err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	summary, err := h.Service.ApplyCoupon(r.Context(), sessionID, req.Code)
	h.responder.Respond(w, r, summary, err, http.StatusOK)
}

// RemoveCouponHandler lida com a requisição DELETE /v1/cart/coupon.
// @Summary Remove o cupom ativo
// @Tags cart
// @Produce json
// @Success 200 {object} domain.CartSummary
// @Security ApiKeyAuth
// @Router /cart/coupon [delete]
func (h *Handler) RemoveCouponHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := httpx.SessionID(r)
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}
	summary, err := h.Service.RemoveCoupon(r.Context(), sessionID)
	h.responder.Respond(w, r, summary, err, http.StatusOK)
}
