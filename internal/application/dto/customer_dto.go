package dto

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CreateCustomerRequest entrada para crear o reemplazar (PUT) un cliente. Todos los campos son obligatorios.
type CreateCustomerRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	Email         string `json:"email" validate:"required,email"`
	CustomerSince int    `json:"customer_since" validate:"required,gte=2000,lte=2100"`
}

// Normalize aplica NFC al nombre (las longitudes se miden en caracteres) y normaliza el email.
func (r *CreateCustomerRequest) Normalize() {
	r.Name = norm.NFC.String(r.Name)
	r.Email = normalizeEmail(r.Email)
}

// UpdateCustomerRequest entrada para actualizar parcialmente (PATCH) un cliente.
type UpdateCustomerRequest struct {
	Name          Optional[string] `json:"name" validate:"omitempty,min=1,max=100"`
	Email         Optional[string] `json:"email" validate:"omitempty,email"`
	CustomerSince Optional[int]    `json:"customer_since" validate:"omitempty,gte=2000,lte=2100"`
}

// Normalize igual que CreateCustomerRequest.Normalize, solo sobre campos presentes.
func (r *UpdateCustomerRequest) Normalize() {
	if v, ok := r.Name.Get(); ok {
		r.Name.Value = norm.NFC.String(v)
	}
	if v, ok := r.Email.Get(); ok {
		r.Email.Value = normalizeEmail(v)
	}
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	CustomerSince int    `json:"customer_since"`
}

// normalizeEmail pasa a minúsculas el dominio; la parte local se conserva tal cual.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
