package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Reason   string `json:"reason,omitempty" example:"COUPON_EXPIRED"`
	Message  string `json:"message" example:"Erro de Validação: This coupon is not valid!"`
}
