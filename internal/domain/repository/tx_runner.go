package repository

import "context"

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/jhoicas/customer-orders-api/internal/domain/repository CustomerRepository,OrderRepository,TxRunner

// TxFunc recibe los repositorios atados a la transacción de la petición.
type TxFunc func(customers CustomerRepository, orders OrderRepository) error

// TxRunner ejecuta fn dentro de una única transacción: Commit si fn devuelve nil,
// Rollback en cualquier otro caso. Si fn o el Commit fallan por domain.ErrConflict,
// Run devuelve *domain.ConflictError con conflictMsg.
type TxRunner interface {
	Run(ctx context.Context, conflictMsg string, fn TxFunc) error
}
