package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/customer-orders-api/internal/domain"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido libera la conexión en toda salida; tras Commit devuelve sql.ErrTxDone.
func (r *TxRunner) Run(ctx context.Context, conflictMsg string, fn repository.TxFunc) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewCustomerRepository(tx), NewOrderRepository(tx)); err != nil {
		return domain.ConflictFrom(err, conflictMsg)
	}
	if err := tx.Commit(); err != nil {
		return domain.ConflictFrom(wrapWriteError("commit transaction", err), conflictMsg)
	}
	return nil
}
