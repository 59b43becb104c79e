package product

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"gostore/internal/api/httpx"
	"gostore/internal/catalog"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/service/catalogservice"
)

// CatalogService define o contrato que o Handler espera da camada de Serviço.
type CatalogService interface {
	List(ctx context.Context, q catalogservice.ListQuery) (catalogservice.Listing, error)
	GetProduct(ctx context.Context, id string) (domain.ProductDetail, error)
	ResolveVariant(ctx context.Context, productID string, selection domain.SelectedAttributes) (catalogservice.VariantResolution, error)
	Coupons(ctx context.Context) ([]domain.Coupon, error)
}

// Handler agrupa os handlers da vitrine.
type Handler struct {
	Service   CatalogService
	Logger    logger.Logger
	responder *httpx.Responder
}

// NewHandler cria o Handler injetando o Service e o Logger.
func NewHandler(svc CatalogService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		Logger:    log,
		responder: httpx.NewResponder(log),
	}
}

// ListProductsHandler lida com a requisição GET /v1/products.
// @Summary Lista a vitrine
// @Description Aplica ordenação, faixas de preço e do atributo secundário, filtros livres e categóricos, e pagina.
// @Tags products
// @Produce json
// @Param sort query string false "Low to High | High to Low | New Added | On Sale"
// @Param priceMin query number false "Preço mínimo"
// @Param priceMax query number false "Preço máximo"
// @Param caratMin query number false "Mínimo do atributo secundário"
// @Param caratMax query number false "Máximo do atributo secundário"
// @Param status query string false "on-sale | in-stock"
// @Param category query string false "Slug da categoria"
// @Param subCategory query string false "Slug da subcategoria"
// @Param color query string false "Slug da cor"
// @Param brand query string false "Slug da marca"
// @Param page query int false "Página (base 1)"
// @Param limit query int false "Itens por página"
// @Success 200 {object} catalogservice.Listing
// @Failure 400 {object} domain.ErrorResponse "Parâmetro inválido"
// @Failure 500 {object} domain.ErrorResponse "Catálogo indisponível"
// @Router /products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	listing, err := h.Service.List(r.Context(), q)
	h.responder.Respond(w, r, listing, err, http.StatusOK)
}

// GetProductHandler lida com a requisição GET /v1/products/{id}.
// @Summary Detalhe do produto
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.ProductDetail
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id} [get]
func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Service.GetProduct(r.Context(), r.PathValue("id"))
	h.responder.Respond(w, r, detail, err, http.StatusOK)
}

// ResolveVariantHandler lida com a requisição POST /v1/products/{id}/variant.
// @Summary Resolve a variante de uma seleção de atributos
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param selection body domain.SelectedAttributes true "Atributo -> opção"
// @Success 200 {object} catalogservice.VariantResolution
// @Failure 400 {object} domain.ErrorResponse "Seleção mal formada"
// @Failure 404 {object} domain.ErrorResponse "Produto ou variante inexistente"
// @Router /products/{id}/variant [post]
func (h *Handler) ResolveVariantHandler(w http.ResponseWriter, r *http.Request) {
	var selection domain.SelectedAttributes
	if err := httpx.Decode(r, &selection); err != nil {
		h.responder.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	res, err := h.Service.ResolveVariant(r.Context(), r.PathValue("id"), selection)
	h.responder.Respond(w, r, res, err, http.StatusOK)
}

// ListCouponsHandler lida com a requisição GET /v1/coupons.
// @Summary Cupons de oferta
// @Tags coupons
// @Produce json
// @Success 200 {array} domain.Coupon
// @Router /coupons [get]
func (h *Handler) ListCouponsHandler(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Service.Coupons(r.Context())
	h.responder.Respond(w, r, coupons, err, http.StatusOK)
}

var sortModes = map[catalog.SortMode]bool{
	catalog.SortDefault:   true,
	catalog.SortLowToHigh: true,
	catalog.SortHighToLow: true,
	catalog.SortNewAdded:  true,
	catalog.SortOnSale:    true,
}

// parseListQuery converte a query string no estado de filtro. As chaves não reservadas
// seguem como filtros livres.
func parseListQuery(values url.Values) (catalogservice.ListQuery, error) {
	var q catalogservice.ListQuery

	q.State.Sort = catalog.SortMode(values.Get("sort"))
	if !sortModes[q.State.Sort] {
		return q, invalidParam("sort", values.Get("sort"))
	}

	var err error
	if q.Page, err = intParam(values, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = intParam(values, "limit"); err != nil {
		return q, err
	}

	if q.State.Price, err = priceRange(values); err != nil {
		return q, err
	}

	minKey, maxKey := "caratMin", "caratMax"
	if values.Has("secondaryMin") || values.Has("secondaryMax") {
		minKey, maxKey = "secondaryMin", "secondaryMax"
	}
	if q.State.Secondary, err = numericRange(values, minKey, maxKey); err != nil {
		return q, err
	}

	q.State.Query = map[string][]string(values)
	return q, nil
}

func intParam(values url.Values, key string) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, invalidParam(key, raw)
	}
	return n, nil
}

func priceRange(values url.Values) (*catalog.PriceRange, error) {
	rawMin, rawMax := values.Get("priceMin"), values.Get("priceMax")
	if rawMin == "" && rawMax == "" {
		return nil, nil
	}

	pr := &catalog.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(math.MaxInt64)}
	var err error
	if rawMin != "" {
		if pr.Min, err = decimal.NewFromString(rawMin); err != nil {
			return nil, invalidParam("priceMin", rawMin)
		}
	}
	if rawMax != "" {
		if pr.Max, err = decimal.NewFromString(rawMax); err != nil {
			return nil, invalidParam("priceMax", rawMax)
		}
	}
	if pr.Min.GreaterThan(pr.Max) {
		return nil, invalidParam("priceMin", rawMin)
	}
	return pr, nil
}

func numericRange(values url.Values, minKey, maxKey string) (*catalog.Range, error) {
	rawMin, rawMax := values.Get(minKey), values.Get(maxKey)
	if rawMin == "" && rawMax == "" {
		return nil, nil
	}

	rg := &catalog.Range{Min: 0, Max: math.MaxFloat64}
	var err error
	if rawMin != "" {
		if rg.Min, err = finiteFloat(rawMin); err != nil {
			return nil, invalidParam(minKey, rawMin)
		}
	}
	if rawMax != "" {
		if rg.Max, err = finiteFloat(rawMax); err != nil {
			return nil, invalidParam(maxKey, rawMax)
		}
	}
	if rg.Min > rg.Max {
		return nil, invalidParam(minKey, rawMin)
	}
	return rg, nil
}

// finiteFloat rejeita NaN e ±Inf, que ParseFloat aceita.
func finiteFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

func invalidParam(key, value string) error {
	return apperror.NewReasonedValidationError(apperror.ReasonInvalidInput,
		fmt.Sprintf("Parâmetro '%s' inválido: '%s'.", key, value), nil)
}
