// Package httpjson concentra la escritura de respuestas JSON.
// Antes writeJSON estaba duplicado por módulo; con users/pets/wishlist/notifications/messages
// ya se repetía lo suficiente como para extraerlo.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/platform/logger"
)

// ErrorBody es el sobre uniforme de error: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

// Ack es la respuesta mínima de las operaciones sin payload.
type Ack struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorBody{Error: msg})
}

// Decode lee el body JSON en v. Devuelve un error de validación si el JSON es inválido.
func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return apperr.Validation("request body required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("invalid json")
	}
	return nil
}

// StatusFor traduce un error de dominio a status HTTP.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrSelfInterest), errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ServiceError escribe el sobre de error para err.
// Los 5xx no exponen el detalle del store: se loguea y se responde un mensaje genérico.
func ServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", map[string]any{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		WriteError(w, status, "internal error")
		return
	}
	WriteError(w, status, err.Error())
}
