package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/customer-orders-api/internal/domain/entity"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación SQLite de OrderRepository.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido y rellena order.ID.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO orders (order_number, total_cents, customer_id) VALUES (?, ?, ?)`,
		order.OrderNumber, order.TotalCents, order.CustomerID,
	)
	if err != nil {
		return wrapWriteError("insert order", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert order: last insert id: %w", err)
	}
	order.ID = id
	return nil
}

// GetByID obtiene un pedido por ID. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRowContext(ctx,
		`SELECT id, order_number, total_cents, customer_id FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.OrderNumber, &o.TotalCents, &o.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// List lista todos los pedidos por ID ascendente.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, order_number, total_cents, customer_id FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.TotalCents, &o.CustomerID); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
