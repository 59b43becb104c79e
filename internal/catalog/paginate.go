package catalog

import "gostore/internal/domain"

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Page é uma fatia paginada do resultado do pipeline.
type Page struct {
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// Paginate recorta items para a página pedida (base 1). Valores inválidos caem nos padrões;
// páginas além do fim devolvem Items vazio.
func Paginate(items []domain.Product, page, limit int) Page {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	result := Page{
		Items:      []domain.Product{},
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	start := (page - 1) * limit
	if start >= total {
		return result
	}
	end := min(start+limit, total)
	result.Items = items[start:end]
	return result
}
