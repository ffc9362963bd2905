package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/customer-orders-api/internal/domain"
)

func TestWrapWriteError_UniqueYFK(t *testing.T) {
	unique := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "customers_email_key"}
	err := wrapWriteError("insert customer", unique)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "customers_email_key")

	fk := fmt.Errorf("exec: %w", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "orders_customer_id_fkey"})
	assert.ErrorIs(t, wrapWriteError("delete customer", fk), domain.ErrConflict)
}

func TestWrapWriteError_OtrosErroresNoSonConflicto(t *testing.T) {
	check := &pgconn.PgError{Code: "23514", ConstraintName: "customers_customer_since_check"}
	err := wrapWriteError("insert customer", check)
	assert.False(t, errors.Is(err, domain.ErrConflict))
	assert.ErrorIs(t, err, check)
}

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", pgx5URL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", pgx5URL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://ya/convertido", pgx5URL("pgx5://ya/convertido"))
}
