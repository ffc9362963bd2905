package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/customer-orders-api/internal/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Querier lo implementan *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// isConstraintConflict detecta violaciones de UNIQUE, PRIMARY KEY o FOREIGN KEY.
// El código extendido no basta: un ON DELETE RESTRICT llega como SQLITE_CONSTRAINT_TRIGGER,
// así que se filtra por el código primario y se clasifica por el mensaje.
// Las de CHECK/NOT NULL no son conflictos: indican un payload que la validación debió rechazar.
func isConstraintConflict(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return false
	}
	msg := se.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}

// wrapWriteError envuelve domain.ErrConflict cuando SQLite rechaza la escritura por una restricción.
func wrapWriteError(op string, err error) error {
	if isConstraintConflict(err) {
		return fmt.Errorf("%s: %w (%v)", op, domain.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
