package dto

import "golang.org/x/text/unicode/norm"

// CreateOrderRequest entrada para crear un pedido. CustomerID es opcional en el esquema;
// el caso de uso rechaza su ausencia.
type CreateOrderRequest struct {
	OrderNumber string `json:"order_number" validate:"required,min=3,max=20"`
	TotalCents  int64  `json:"total_cents" validate:"required,gte=1,lte=1000000"`
	CustomerID  *int64 `json:"customer_id"`
}

// Normalize aplica NFC al número de pedido.
func (r *CreateOrderRequest) Normalize() {
	r.OrderNumber = norm.NFC.String(r.OrderNumber)
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"order_number"`
	TotalCents  int64  `json:"total_cents"`
	CustomerID  int64  `json:"customer_id"`
}
