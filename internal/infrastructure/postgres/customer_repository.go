package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/customer-orders-api/internal/domain"
	"github.com/jhoicas/customer-orders-api/internal/domain/entity"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente y rellena customer.ID.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (name, email, customer_since)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, customer.Name, customer.Email, customer.CustomerSince).Scan(&customer.ID)
	if err != nil {
		return wrapWriteError("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT id, name, email, customer_since FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.CustomerSince)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista todos los clientes por ID ascendente.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, email, customer_since FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.CustomerSince); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update sobrescribe name, email y customer_since.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `UPDATE customers SET name = $2, email = $3, customer_since = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, customer.ID, customer.Name, customer.Email, customer.CustomerSince)
	if err != nil {
		return wrapWriteError("update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update customer %d: %w", customer.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un cliente por ID. Con pedidos asociados la FK (RESTRICT) lo rechaza.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return wrapWriteError("delete customer", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete customer %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
