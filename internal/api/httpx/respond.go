// Package httpx reúne o tratamento padronizado de respostas JSON compartilhado pelos handlers.
package httpx

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Responder escreve respostas de sucesso e de erro no formato da API.
type Responder struct {
	Logger logger.Logger
}

// NewResponder cria o Responder.
func NewResponder(log logger.Logger) *Responder {
	return &Responder{Logger: log}
}

// Respond escreve data com successStatus quando err é nil; caso contrário traduz err
// para o corpo domain.ErrorResponse com o status HTTP da categoria.
func (rs *Responder) Respond(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		rs.Logger.Debug("Requisição concluída com sucesso", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})
		writeJSON(w, successStatus, data, rs.Logger)
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		rs.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		rs.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"path": r.URL.Path,
		})
	}

	writeJSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Reason:   apperror.ReasonOf(err),
		Message:  message,
	}, rs.Logger)
}

// Decode lê o corpo JSON da requisição em dst. Erros viram ValidationError.
func Decode(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperror.NewReasonedValidationError(apperror.ReasonInvalidInput, "Corpo da requisição ausente.", nil)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewReasonedValidationError(apperror.ReasonInvalidInput, "Payload inválido. Verifique o formato JSON.", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// SessionID devolve a sessão anexada pelo middleware de autenticação.
func SessionID(r *http.Request) (string, error) {
	claims, ok := middleware.GetSessionClaimsFromContext(r.Context())
	if !ok || claims.SessionID == "" {
		return "", apperror.NewUnauthorizedError("Sessão ausente no contexto da requisição.")
	}
	return claims.SessionID, nil
}
