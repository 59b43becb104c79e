package catalog

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"gostore/internal/domain"
)

// SortMode é o modo de ordenação da vitrine. Apenas um fica ativo por vez.
type SortMode string

const (
	SortDefault   SortMode = ""
	SortLowToHigh SortMode = "Low to High"
	SortHighToLow SortMode = "High to Low"
	SortNewAdded  SortMode = "New Added"
	SortOnSale    SortMode = "On Sale"
)

// Chaves de filtro categórico nomeado (estágio 5).
const (
	KeyStatus      = "status"
	KeyCategory    = "category"
	KeySubCategory = "subCategory"
	KeyColor       = "color"
	KeyBrand       = "brand"

	StatusOnSale  = "on-sale"
	StatusInStock = "in-stock"
)

// ReservedQueryKeys são chaves de query tratadas fora do estágio de filtros livres.
var ReservedQueryKeys = map[string]bool{
	"sort": true, "page": true, "limit": true,
	"priceMin": true, "priceMax": true,
	"secondaryMin": true, "secondaryMax": true,
	"caratMin": true, "caratMax": true,
	KeyStatus: true, KeyCategory: true, KeySubCategory: true, KeyColor: true, KeyBrand: true,
}

// PriceRange é um intervalo fechado de preço.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Range é um intervalo fechado numérico para o atributo secundário.
type Range struct {
	Min float64
	Max float64
}

// FilterState é o estado completo dos filtros de uma listagem.
// Ranges nulos desativam o estágio correspondente.
type FilterState struct {
	Sort      SortMode
	Price     *PriceRange
	Secondary *Range
	Query     map[string][]string
}

// Pipeline aplica ordenação e filtros sobre uma coleção de produtos.
// Não guarda estado entre chamadas.
type Pipeline struct {
	secondaryAttribute string
}

// NewPipeline cria o pipeline com o nome do atributo numérico secundário (e.g., "Carat Weight").
func NewPipeline(secondaryAttribute string) *Pipeline {
	return &Pipeline{secondaryAttribute: secondaryAttribute}
}

// Apply executa os estágios na ordem fixa: ordenação, preço, atributo secundário,
// filtros livres e filtros categóricos. A entrada não é modificada.
func (p *Pipeline) Apply(products []domain.Product, state FilterState) []domain.Product {
	items := sortProducts(products, state.Sort)

	if state.Price != nil {
		items = keep(items, func(prod domain.Product) bool {
			return prod.Price.GreaterThanOrEqual(state.Price.Min) && prod.Price.LessThanOrEqual(state.Price.Max)
		})
	}

	if state.Secondary != nil && p.secondaryAttribute != "" {
		items = keep(items, func(prod domain.Product) bool {
			return p.secondaryInRange(prod, *state.Secondary)
		})
	}

	items = keep(items, func(prod domain.Product) bool {
		return matchesQuery(prod, state.Query)
	})

	return applyNamedFilters(items, state.Query)
}

func sortProducts(products []domain.Product, mode SortMode) []domain.Product {
	items := slices.Clone(products)

	switch mode {
	case SortLowToHigh:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.LessThan(items[j].Price) })
	case SortHighToLow:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.GreaterThan(items[j].Price) })
	case SortNewAdded:
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	case SortOnSale:
		items = keep(items, func(prod domain.Product) bool { return prod.Discount > 0 })
	}
	return items
}

// secondaryInRange: produtos sem o atributo passam.
func (p *Pipeline) secondaryInRange(prod domain.Product, r Range) bool {
	values := p.secondaryValues(prod)
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if v >= r.Min && v <= r.Max {
			return true
		}
	}
	return false
}

// secondaryValues busca primeiro nos atributos de classificação e depois na informação adicional.
func (p *Pipeline) secondaryValues(prod domain.Product) []float64 {
	var values []float64
	for _, attr := range prod.Attributes {
		if !strings.EqualFold(attr.Name, p.secondaryAttribute) {
			continue
		}
		for _, opt := range attr.Options {
			if v, ok := ParseMeasure(opt); ok {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			return values
		}
	}

	for _, info := range prod.AdditionalInfo {
		if strings.EqualFold(info.Key, p.secondaryAttribute) {
			if v, ok := ParseMeasure(info.Value); ok {
				return []float64{v}
			}
		}
	}
	return nil
}

// matchesQuery aplica os filtros livres: AND entre chaves, OR entre valores de uma chave.
// Produto sem a chave passa (mesma política do atributo secundário).
func matchesQuery(prod domain.Product, query map[string][]string) bool {
	for key, wanted := range query {
		if ReservedQueryKeys[key] || len(wanted) == 0 {
			continue
		}
		candidates := candidateValues(prod, key)
		if candidates == nil {
			continue
		}
		if !slices.ContainsFunc(wanted, func(w string) bool {
			return slices.Contains(candidates, NormalizeToken(w))
		}) {
			return false
		}
	}
	return true
}

func candidateValues(prod domain.Product, key string) []string {
	normKey := NormalizeToken(key)
	for _, attr := range prod.Attributes {
		if NormalizeToken(attr.Name) == normKey {
			out := make([]string, 0, len(attr.Options))
			for _, opt := range attr.Options {
				out = append(out, NormalizeToken(opt))
			}
			return out
		}
	}
	for _, info := range prod.AdditionalInfo {
		if NormalizeToken(info.Key) == normKey {
			return []string{NormalizeToken(info.Value)}
		}
	}
	return nil
}

func applyNamedFilters(items []domain.Product, query map[string][]string) []domain.Product {
	if statuses := query[KeyStatus]; len(statuses) > 0 {
		items = keep(items, func(prod domain.Product) bool {
			for _, s := range statuses {
				switch s {
				case StatusOnSale:
					if prod.Discount > 0 {
						return true
					}
				case StatusInStock:
					if prod.Status == domain.StatusInStock {
						return true
					}
				default:
					// status desconhecido não restringe
					return true
				}
			}
			return false
		})
	}

	if values := query[KeyCategory]; len(values) > 0 {
		items = keep(items, func(prod domain.Product) bool { return matchesName(prod.Parent, values) })
	}
	if values := query[KeySubCategory]; len(values) > 0 {
		items = keep(items, func(prod domain.Product) bool { return matchesName(prod.Children, values) })
	}
	if values := query[KeyColor]; len(values) > 0 {
		items = keep(items, func(prod domain.Product) bool {
			for _, img := range prod.Images {
				if img.Color != nil && img.Color.Name != "" && matchesName(img.Color.Name, values) {
					return true
				}
			}
			return false
		})
	}
	if values := query[KeyBrand]; len(values) > 0 {
		items = keep(items, func(prod domain.Product) bool { return matchesName(prod.Brand.Name, values) })
	}
	return items
}

func matchesName(field string, wanted []string) bool {
	normalized := NormalizeName(field)
	for _, w := range wanted {
		if NormalizeName(w) == normalized {
			return true
		}
	}
	return false
}

func keep(items []domain.Product, pred func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeToken: minúsculas e sequências de espaço viram "-".
func NormalizeToken(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// NormalizeName é a normalização dos slugs de categoria, marca e cor:
// minúsculas, todo "&" removido e cada espaço vira "-" ("Rings & Bands" -> "rings--bands").
// Os dois lados da comparação passam por aqui, então slugs que removeram só o primeiro "&" também casam.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", "")
	return strings.ReplaceAll(s, " ", "-")
}

// MaxPrice devolve o maior preço da coleção (limite do slider de preço).
func MaxPrice(products []domain.Product) decimal.Decimal {
	max := decimal.Zero
	for _, p := range products {
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}
	return max
}
