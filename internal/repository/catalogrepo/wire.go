package catalogrepo

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gostore/internal/catalog"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
)

// Formato JSON do serviço de catálogo. Atributos e variantes chegam como texto codificado.

type productEnvelope struct {
	Data []productDTO `json:"data"`
}

type productDTO struct {
	ID                     string          `json:"_id"`
	SKU                    string          `json:"sku"`
	Title                  string          `json:"title"`
	Description            string          `json:"description"`
	Price                  decimal.Decimal `json:"price"`
	Discount               float64         `json:"discount"`
	Status                 string          `json:"status"`
	ClassificationAttrs    []string        `json:"classificationAttributes"`
	ProductVariants        []string        `json:"productVariants"`
	VariantWarrantyPeriods []int           `json:"variantWarrantyPeriods"`
	Reviews                []struct {
		Rating float64 `json:"rating"`
	} `json:"reviews"`
	ImageURLs []struct {
		Img   string `json:"img"`
		Color *struct {
			Name    string `json:"name"`
			ClrCode string `json:"clrCode"`
		} `json:"color"`
	} `json:"imageURLs"`
	Category struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	} `json:"category"`
	Parent   string `json:"parent"`
	Children string `json:"children"`
	Brand    struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	} `json:"brand"`
	Tags                  []string `json:"tags"`
	AdditionalInformation []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"additionalInformation"`
	ProductType    string     `json:"productType"`
	WarrantyPeriod int        `json:"warrantyPeriod"`
	CreatedAt      time.Time  `json:"createdAt"`
	OfferDate      *offerDate `json:"offerDate"`
}

type offerDate struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type couponDTO struct {
	CouponCode         string          `json:"couponCode"`
	Title              string          `json:"title"`
	DiscountPercentage float64         `json:"discountPercentage"`
	MinimumAmount      decimal.Decimal `json:"minimumAmount"`
	ProductType        string          `json:"productType"`
	EndTime            time.Time       `json:"endTime"`
}

// toDomain converte o DTO e interpreta as codificações uma única vez.
// Entradas mal formadas são descartadas e devolvidas em skipped; o produto continua válido.
func (p productDTO) toDomain() (domain.Product, []*apperror.DataShapeError) {
	var skipped []*apperror.DataShapeError
	collect := func(err error) {
		var shapeErr *apperror.DataShapeError
		if errors.As(err, &shapeErr) {
			skipped = append(skipped, shapeErr)
		}
	}

	out := domain.Product{
		ID:             p.ID,
		SKU:            p.SKU,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		Discount:       p.Discount,
		Status:         domain.InventoryStatus(strings.TrimSpace(p.Status)),
		Category:       domain.CategoryRef{ID: p.Category.ID, Name: p.Category.Name},
		Parent:         p.Parent,
		Children:       p.Children,
		Brand:          domain.BrandRef{ID: p.Brand.ID, Name: p.Brand.Name},
		Tags:           p.Tags,
		ProductType:    p.ProductType,
		WarrantyPeriod: p.WarrantyPeriod,
		CreatedAt:      p.CreatedAt,
	}
	if p.OfferDate != nil {
		out.OfferEndsAt = p.OfferDate.EndDate
	}

	if out.Discount < 0 || out.Discount > 100 {
		collect(apperror.NewDataShapeError("discount", decimal.NewFromFloat(out.Discount).String(), "desconto fora de [0,100]; ignorado"))
		out.Discount = 0
	}

	for _, raw := range p.ClassificationAttrs {
		attr, err := catalog.ParseAttribute(raw)
		if err != nil {
			collect(err)
			continue
		}
		out.Attributes = append(out.Attributes, attr)
	}

	for idx, raw := range p.ProductVariants {
		v, err := catalog.ParseVariant(raw, len(out.Attributes))
		if err != nil {
			collect(err)
			continue
		}
		v.WarrantyPeriod = p.WarrantyPeriod
		if idx < len(p.VariantWarrantyPeriods) && p.VariantWarrantyPeriods[idx] > 0 {
			v.WarrantyPeriod = p.VariantWarrantyPeriods[idx]
		}
		out.Variants = append(out.Variants, v)
	}

	for _, r := range p.Reviews {
		out.Reviews = append(out.Reviews, domain.Review{Rating: r.Rating})
	}
	for _, img := range p.ImageURLs {
		image := domain.Image{URL: img.Img}
		if img.Color != nil {
			image.Color = &domain.Color{Name: img.Color.Name, Code: img.Color.ClrCode}
		}
		out.Images = append(out.Images, image)
	}
	for _, info := range p.AdditionalInformation {
		out.AdditionalInfo = append(out.AdditionalInfo, domain.InfoEntry{Key: info.Key, Value: info.Value})
	}

	return out, skipped
}

func (c couponDTO) toDomain() domain.Coupon {
	return domain.Coupon{
		Code:               c.CouponCode,
		Title:              c.Title,
		DiscountPercentage: c.DiscountPercentage,
		MinimumAmount:      c.MinimumAmount,
		ProductType:        c.ProductType,
		EndTime:            c.EndTime,
	}
}
