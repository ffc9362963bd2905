package entity

// Customer representa un cliente. El ID lo asigna la BD al insertar.
type Customer struct {
	ID            int64
	Name          string
	Email         string
	CustomerSince int // año de alta, 2000..2100
}
