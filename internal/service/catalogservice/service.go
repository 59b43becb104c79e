package catalogservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"gostore/internal/catalog"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pricing"
)

// ListQuery agrupa o estado de filtro e a paginação pedida pelo cliente.
type ListQuery struct {
	State catalog.FilterState
	Page  int
	Limit int
}

// Listing é uma página da vitrine mais o maior preço do catálogo inteiro (limite do slider).
type Listing struct {
	catalog.Page
	MaxPrice decimal.Decimal `json:"maxPrice"`
}

// VariantResolution é o resultado de uma seleção de atributos na página de detalhe.
type VariantResolution struct {
	Complete    bool            `json:"complete"`
	Variant     *domain.Variant `json:"variant,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Purchasable bool            `json:"purchasable"`
}

// Service expõe a vitrine: listagem filtrada, detalhe, resolução de variante e cupons de oferta.
type Service struct {
	repo     domain.CatalogRepository
	pipeline *catalog.Pipeline
	pageSize int
	logger   logger.Logger
}

// NewService cria o serviço de catálogo. pageSize <= 0 usa o padrão da vitrine.
func NewService(repo domain.CatalogRepository, secondaryAttribute string, pageSize int, log logger.Logger) *Service {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &Service{
		repo:     repo,
		pipeline: catalog.NewPipeline(secondaryAttribute),
		pageSize: pageSize,
		logger:   log,
	}
}

// List aplica o pipeline de filtros sobre o catálogo e devolve a página pedida.
func (s *Service) List(ctx context.Context, q ListQuery) (Listing, error) {
	products, err := s.repo.FetchAllProducts(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar o catálogo para listagem.", err)
		return Listing{}, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	filtered := s.pipeline.Apply(products, q.State)

	s.logger.Debug("Listagem filtrada.", map[string]interface{}{
		"total":    len(products),
		"filtered": len(filtered),
		"sort":     q.State.Sort,
	})
	return Listing{
		Page:     catalog.Paginate(filtered, q.Page, limit),
		MaxPrice: catalog.MaxPrice(products),
	}, nil
}

// FindProduct busca um produto pelo ID no catálogo.
func (s *Service) FindProduct(ctx context.Context, id string) (domain.Product, error) {
	products, err := s.repo.FetchAllProducts(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto %s não encontrado.", id))
}

// GetProduct monta a visão de detalhe com preço efetivo e média das avaliações.
func (s *Service) GetProduct(ctx context.Context, id string) (domain.ProductDetail, error) {
	p, err := s.FindProduct(ctx, id)
	if err != nil {
		return domain.ProductDetail{}, err
	}

	price, err := pricing.EffectivePrice(p.Price, p.Discount)
	if err != nil {
		s.logger.Warn("Produto com preço inválido no detalhe.", map[string]interface{}{
			"product_id": p.ID,
			"error":      err.Error(),
		})
		return domain.ProductDetail{}, err
	}

	return domain.ProductDetail{
		Product:        p,
		EffectivePrice: price,
		AverageRating:  p.AverageRating(),
		ReviewCount:    len(p.Reviews),
		Purchasable:    p.Purchasable(),
	}, nil
}

// ResolveVariant valida a seleção e, se completa, devolve a variante correspondente.
// Seleção completa sem variante correspondente é NotFound.
func (s *Service) ResolveVariant(ctx context.Context, productID string, selection domain.SelectedAttributes) (VariantResolution, error) {
	p, err := s.FindProduct(ctx, productID)
	if err != nil {
		return VariantResolution{}, err
	}
	if err := catalog.ValidateSelection(p.Attributes, selection); err != nil {
		return VariantResolution{}, err
	}

	price, err := pricing.EffectivePrice(p.Price, p.Discount)
	if err != nil {
		return VariantResolution{}, err
	}
	if !catalog.SelectionComplete(p.Attributes, selection) {
		return VariantResolution{Price: price, Purchasable: p.Purchasable()}, nil
	}

	variant, ok := catalog.ResolveVariant(p.Attributes, p.Variants, selection)
	if !ok {
		return VariantResolution{}, apperror.NewNotFoundError("Nenhuma variante corresponde à seleção.")
	}
	return VariantResolution{
		Complete:    true,
		Variant:     variant,
		Price:       variant.Price,
		Purchasable: p.Purchasable() && variant.Stock > 0,
	}, nil
}

// Coupons devolve os cupons de oferta publicados.
func (s *Service) Coupons(ctx context.Context) ([]domain.Coupon, error) {
	coupons, err := s.repo.FetchOfferCoupons(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar cupons de oferta.", err)
		return nil, err
	}
	return coupons, nil
}
