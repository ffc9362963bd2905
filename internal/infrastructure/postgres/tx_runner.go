package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/customer-orders-api/internal/domain"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido es un no-op tras un Commit correcto y devuelve la conexión al pool
// en cualquier otra salida, incluido un panic.
func (r *TxRunner) Run(ctx context.Context, conflictMsg string, fn repository.TxFunc) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(NewCustomerRepository(tx), NewOrderRepository(tx)); err != nil {
		return domain.ConflictFrom(err, conflictMsg)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ConflictFrom(wrapWriteError("commit transaction", err), conflictMsg)
	}
	return nil
}
