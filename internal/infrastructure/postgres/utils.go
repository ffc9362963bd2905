package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/customer-orders-api/internal/domain"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx; los repositorios no saben cuál reciben.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeForeignKeyViolation
	}
	return strings.Contains(err.Error(), codeForeignKeyViolation)
}

// wrapWriteError envuelve domain.ErrConflict cuando la BD rechaza la escritura por una restricción.
func wrapWriteError(op string, err error) error {
	if isUniqueViolation(err) || isForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w (%s)", op, domain.ErrConflict, constraintName(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "constraint"
}
