// Package apperr define los tipos de error que cruzan capas (dominio -> HTTP).
// Cada módulo envuelve estos sentinels con fmt.Errorf("%w: ...") para agregar contexto.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrSelfInterest = errors.New("cannot express interest in your own pet")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStore        = errors.New("store error")
)

// Validation arma un error de validación con el detalle del campo.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound arma un error not found con el recurso.
func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// Conflict arma un error de conflicto con el detalle.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Store envuelve un error del colaborador de persistencia.
// Si ya trae un kind conocido (p.ej. not found del repo) se devuelve tal cual.
func Store(err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}

// IsKnown indica si err ya está clasificado.
func IsKnown(err error) bool {
	for _, k := range []error{
		ErrValidation,
		ErrNotFound,
		ErrSelfInterest,
		ErrConflict,
		ErrForbidden,
		ErrUnauthorized,
		ErrStore,
	} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
