package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gostore/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	sentinel := errors.New("cupom expirado")

	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantCategory string
	}{
		{"validação", apperror.NewValidationError("campo vazio"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"validação com motivo", apperror.NewReasonedValidationError(apperror.ReasonCouponExpired, "expirado", sentinel), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"não encontrado", apperror.NewNotFoundError("pedido"), http.StatusNotFound, "NOT_FOUND"},
		{"conflito", apperror.NewConflictError("checkout em andamento"), http.StatusConflict, "CONFLICT"},
		{"pagamento", apperror.NewPaymentError("cartão recusado", nil), http.StatusPaymentRequired, "PAYMENT_ERROR"},
		{"persistência", apperror.NewPersistenceError("falha ao salvar", nil), http.StatusServiceUnavailable, "PERSISTENCE_ERROR"},
		{"cancelado", apperror.NewCancelledError("timeout", nil), http.StatusGatewayTimeout, "CANCELLED"},
		{"formato", apperror.NewDataShapeError("productVariants", "x", "poucos tokens"), http.StatusUnprocessableEntity, "DATA_SHAPE_ERROR"},
		{"não autorizado", apperror.NewUnauthorizedError("sem token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"interno", apperror.NewDBError("falha", errors.New("conn reset")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"encapsulado com %w", fmt.Errorf("serviço: %w", apperror.NewPaymentError("recusado", nil)), http.StatusPaymentRequired, "PAYMENT_ERROR"},
		{"erro genérico", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCategory, category)
		})
	}
}

func TestReasonedValidationError_UnwrapsSentinel(t *testing.T) {
	sentinel := errors.New("abaixo do mínimo")
	err := apperror.NewReasonedValidationError(apperror.ReasonBelowMinimum, "Minimum 50 USD required", sentinel)

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, apperror.ReasonBelowMinimum, apperror.ReasonOf(err))
	assert.Equal(t, "", apperror.ReasonOf(errors.New("outro")))
}

func TestInternalError_IncludesCause(t *testing.T) {
	err := apperror.NewInternalError("Falha interna ao buscar produtos.", errors.New("database connection lost"))

	assert.Contains(t, err.Error(), "Falha interna ao buscar produtos.")
	assert.Contains(t, err.Error(), "database connection lost")
}

func TestPaymentError_CarriesGatewayReason(t *testing.T) {
	err := apperror.NewPaymentError("o pagamento com cartão não foi autorizado", errors.New("Your card number is incorrect."))

	_, _, msg := apperror.MapToHTTPStatus(err)

	assert.Equal(t, "Falha no pagamento: o pagamento com cartão não foi autorizado: Your card number is incorrect.", msg)
	assert.Equal(t, "Falha no pagamento: recusado", apperror.NewPaymentError("recusado", nil).Error())
}
