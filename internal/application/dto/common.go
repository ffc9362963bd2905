package dto

import "github.com/jhoicas/customer-orders-api/internal/domain"

// ErrorResponse cuerpo de error HTTP. Details solo se rellena en errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
