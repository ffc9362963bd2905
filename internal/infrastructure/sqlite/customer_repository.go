package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/customer-orders-api/internal/domain"
	"github.com/jhoicas/customer-orders-api/internal/domain/entity"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación SQLite de CustomerRepository.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar db o tx.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente y rellena customer.ID.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO customers (name, email, customer_since) VALUES (?, ?, ?)`,
		customer.Name, customer.Email, customer.CustomerSince,
	)
	if err != nil {
		return wrapWriteError("insert customer", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert customer: last insert id: %w", err)
	}
	customer.ID = id
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, email, customer_since FROM customers WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.CustomerSince)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista todos los clientes por ID ascendente.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, email, customer_since FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer func() { _ = rows.Close() }()
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
	res, err := r.q.ExecContext(ctx,
		`UPDATE customers SET name = ?, email = ?, customer_since = ? WHERE id = ?`,
		customer.Name, customer.Email, customer.CustomerSince, customer.ID,
	)
	if err != nil {
		return wrapWriteError("update customer", err)
	}
	return requireAffected(res, "update customer", customer.ID)
}

// Delete elimina un cliente por ID. Con pedidos asociados la FK (RESTRICT) lo rechaza.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return wrapWriteError("delete customer", err)
	}
	return requireAffected(res, "delete customer", id)
}

func requireAffected(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, domain.ErrNotFound)
	}
	return nil
}
