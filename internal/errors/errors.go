package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoStore.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "PAYMENT_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// Motivos de validação usados pelo núcleo de regras da loja.
const (
	ReasonInvalidInput       = "INVALID_INPUT"
	ReasonMalformedSelection = "MALFORMED_SELECTION"
	ReasonCouponNotFound     = "COUPON_NOT_FOUND"
	ReasonCouponExpired      = "COUPON_EXPIRED"
	ReasonBelowMinimum       = "BELOW_MINIMUM"
	ReasonEmptyCart          = "EMPTY_CART"
	ReasonOutOfStock         = "OUT_OF_STOCK"
)

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
// Reason é opcional e identifica a regra violada (cupom expirado, seleção incompleta...).
type ValidationError struct {
	Msg    string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return e.Err }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NewReasonedValidationError cria um erro de validação com motivo e causa (sentinela) encapsulada.
func NewReasonedValidationError(reason, msg string, cause error) AppError {
	return &ValidationError{Msg: msg, Reason: reason, Err: cause}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de estado (e.g., checkout já em andamento para a sessão).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa falta de credenciais ou token inválido.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// PaymentError representa recusa do cartão ou gateway de pagamento inacessível.
// O checkout volta para Idle e o usuário pode reenviar.
type PaymentError struct {
	Msg string
	Err error
}

// Error inclui o motivo devolvido pelo gateway para que chegue ao cliente.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Falha no pagamento: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Falha no pagamento: %s", e.Msg)
}

func (e *PaymentError) Category() string { return "PAYMENT_ERROR" }
func (e *PaymentError) HTTPStatus() int  { return http.StatusPaymentRequired } // 402
func (e *PaymentError) Unwrap() error    { return e.Err }

// NewPaymentError cria um novo erro de pagamento.
func NewPaymentError(msg string, err error) AppError {
	return &PaymentError{Msg: msg, Err: err}
}

// PersistenceError representa falha ao gravar o pedido. O carrinho é preservado.
type PersistenceError struct {
	Msg string
	Err error
}

func (e *PersistenceError) Error() string    { return fmt.Sprintf("Falha de persistência: %s", e.Msg) }
func (e *PersistenceError) Category() string { return "PERSISTENCE_ERROR" }
func (e *PersistenceError) HTTPStatus() int  { return http.StatusServiceUnavailable } // 503
func (e *PersistenceError) Unwrap() error    { return e.Err }

// NewPersistenceError cria um novo erro de persistência.
func NewPersistenceError(msg string, err error) AppError {
	return &PersistenceError{Msg: msg, Err: err}
}

// DataShapeError indica um dado externo fora do formato esperado (atributo ou variante mal codificados).
// Os estágios de ingestão e filtro degradam de forma permissiva ao recebê-lo.
type DataShapeError struct {
	Field string
	Value string
	Msg   string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("Formato de dado inválido em %s (%q): %s", e.Field, e.Value, e.Msg)
}
func (e *DataShapeError) Category() string { return "DATA_SHAPE_ERROR" }
func (e *DataShapeError) HTTPStatus() int  { return http.StatusUnprocessableEntity } // 422
func (e *DataShapeError) Unwrap() error    { return nil }

// NewDataShapeError cria um novo erro de formato de dado.
func NewDataShapeError(field, value, msg string) AppError {
	return &DataShapeError{Field: field, Value: value, Msg: msg}
}

// CancelledError representa uma chamada externa que excedeu o timeout ou foi cancelada.
type CancelledError struct {
	Msg string
	Err error
}

func (e *CancelledError) Error() string    { return fmt.Sprintf("Operação cancelada: %s", e.Msg) }
func (e *CancelledError) Category() string { return "CANCELLED" }
func (e *CancelledError) HTTPStatus() int  { return http.StatusGatewayTimeout } // 504
func (e *CancelledError) Unwrap() error    { return e.Err }

// NewCancelledError cria um novo erro de cancelamento.
func NewCancelledError(msg string, err error) AppError {
	return &CancelledError{Msg: msg, Err: err}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Erro Interno: %s", e.Msg)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB)", msg), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e mensagem.
// Usa errors.As para que erros encapsulados com %w também sejam reconhecidos.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}

// ReasonOf devolve o motivo de um ValidationError na cadeia, ou "" se não houver.
func ReasonOf(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Reason
	}
	return ""
}
