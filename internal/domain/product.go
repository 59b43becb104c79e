package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStatus é o estado de estoque declarado pelo catálogo.
type InventoryStatus string

const (
	StatusInStock    InventoryStatus = "in-stock"
	StatusOutOfStock InventoryStatus = "out-of-stock"
)

// Product representa o item do catálogo já convertido para registros tipados.
// Atributos e variantes chegam codificados como texto e são interpretados uma única vez na ingestão.
type Product struct {
	ID             string                    `json:"id"`
	SKU            string                    `json:"sku"`
	Title          string                    `json:"title"`
	Description    string                    `json:"description"`
	Price          decimal.Decimal           `json:"price"`
	Discount       float64                   `json:"discount"` // percentual em [0,100]
	Status         InventoryStatus           `json:"status"`
	Attributes     []ClassificationAttribute `json:"classificationAttributes"`
	Variants       []Variant                 `json:"productVariants"`
	Reviews        []Review                  `json:"reviews"`
	Images         []Image                   `json:"imageURLs"`
	Category       CategoryRef               `json:"category"`
	Parent         string                    `json:"parent"`   // categoria
	Children       string                    `json:"children"` // subcategoria
	Brand          BrandRef                  `json:"brand"`
	Tags           []string                  `json:"tags"`
	AdditionalInfo []InfoEntry               `json:"additionalInformation"`
	ProductType    string                    `json:"productType"`
	WarrantyPeriod int                       `json:"warrantyPeriod"` // dias
	CreatedAt      time.Time                 `json:"createdAt"`
	OfferEndsAt    *time.Time                `json:"offerEndsAt,omitempty"`
}

// ClassificationAttribute é um eixo de variação (e.g., "Size") com as opções permitidas.
// A ordem das opções serve apenas para exibição.
type ClassificationAttribute struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Variant é uma combinação concreta de opções, alinhada por posição aos atributos declarados.
type Variant struct {
	Options        []string        `json:"options"`
	Stock          int             `json:"stock"`
	Price          decimal.Decimal `json:"price"`
	WarrantyPeriod int             `json:"warrantyPeriod"` // dias
}

// Review é uma avaliação de cliente; apenas a nota participa das regras.
type Review struct {
	Rating float64 `json:"rating"`
}

// Image é uma imagem do produto, opcionalmente marcada com uma cor.
type Image struct {
	URL   string `json:"img"`
	Color *Color `json:"color,omitempty"`
}

// Color identifica a cor de uma imagem (nome e código hexadecimal).
type Color struct {
	Name string `json:"name"`
	Code string `json:"clrCode"`
}

// CategoryRef referencia a categoria do produto.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrandRef referencia a marca do produto.
type BrandRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InfoEntry é um par chave/valor livre de informação adicional.
type InfoEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SelectedAttributes mapeia nome do atributo -> opção escolhida.
type SelectedAttributes map[string]string

// AverageRating devolve a média das notas, ou 0 sem avaliações.
func (p Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return sum / float64(len(p.Reviews))
}

// Purchasable indica se o produto pode entrar no carrinho.
func (p Product) Purchasable() bool {
	return p.Status != StatusOutOfStock
}

// ProductDetail é a visão de detalhe entregue pela API.
type ProductDetail struct {
	Product
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	AverageRating  float64         `json:"averageRating"`
	ReviewCount    int             `json:"reviewCount"`
	Purchasable    bool            `json:"purchasable"`
}

// Coupon é uma oferta publicada pelo catálogo.
type Coupon struct {
	Code               string          `json:"couponCode"`
	Title              string          `json:"title"`
	DiscountPercentage float64         `json:"discountPercentage"`
	MinimumAmount      decimal.Decimal `json:"minimumAmount"`
	ProductType        string          `json:"productType"`
	EndTime            time.Time       `json:"endTime"`
}

// --- Contratos ---

// CatalogRepository é o contrato com o serviço de catálogo externo.
type CatalogRepository interface {
	FetchAllProducts(ctx context.Context) ([]Product, error)
	FetchOfferCoupons(ctx context.Context) ([]Coupon, error)
}
