package entity

// Order representa un pedido de un cliente. CustomerID no cambia tras la creación.
type Order struct {
	ID          int64
	OrderNumber string
	TotalCents  int64
	CustomerID  int64
}
