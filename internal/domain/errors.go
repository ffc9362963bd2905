package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// FieldError describe una restricción incumplida por un campo del payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los errores por campo de un payload rechazado antes de tocar la BD.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye un ValidationError con un único campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError indica que el id (o el id referenciado) no existe.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError indica que la BD rechazó la escritura por una restricción de unicidad o FK.
// Message lo aporta quien abrió la transacción y depende de la operación.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ConflictFrom traduce un error de restricción (envuelve ErrConflict) al ConflictError de la
// operación en curso. Cualquier otro error se devuelve sin cambios.
func ConflictFrom(err error, msg string) error {
	if err == nil || !errors.Is(err, ErrConflict) {
		return err
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return err
	}
	if msg == "" {
		msg = ErrConflict.Error()
	}
	return &ConflictError{Message: msg}
}
