package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customer-orders-api/internal/domain"
	"github.com/jhoicas/customer-orders-api/internal/domain/entity"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
	"github.com/jhoicas/customer-orders-api/internal/infrastructure/sqlite"
)

// newDB abre una BD en memoria con el esquema migrado.
func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(db))
	return db
}

func fakeCustomer(i int) *entity.Customer {
	return &entity.Customer{
		Name:          gofakeit.Name(),
		Email:         fmt.Sprintf("%s.%d@example.com", gofakeit.Username(), i),
		CustomerSince: gofakeit.Number(2000, 2100),
	}
}

func TestMigrate_Idempotente(t *testing.T) {
	db := newDB(t)
	assert.NoError(t, sqlite.Migrate(db), "una segunda ejecución no aplica cambios")
}

func TestOpen_Fichero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "test.db")
	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, sqlite.Migrate(db))

	repo := sqlite.NewCustomerRepository(db)
	require.NoError(t, repo.Create(context.Background(), fakeCustomer(1)))
}

func TestCustomerRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewCustomerRepository(newDB(t))

	c := fakeCustomer(1)
	require.NoError(t, repo.Create(ctx, c))
	assert.Positive(t, c.ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	c.Name = "Renombrado"
	require.NoError(t, repo.Update(ctx, c))
	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", got.Name)

	require.NoError(t, repo.Delete(ctx, c.ID))
	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCustomerRepo_ListOrdenadoPorID(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewCustomerRepository(newDB(t))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, fakeCustomer(i)))
	}
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestCustomerRepo_EmailDuplicadoEsConflicto(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewCustomerRepository(newDB(t))

	a := fakeCustomer(1)
	require.NoError(t, repo.Create(ctx, a))

	b := fakeCustomer(2)
	b.Email = a.Email
	assert.ErrorIs(t, repo.Create(ctx, b), domain.ErrConflict)

	require.NoError(t, repo.Create(ctx, fakeCustomer(3)))
	other := fakeCustomer(4)
	require.NoError(t, repo.Create(ctx, other))
	other.Email = a.Email
	assert.ErrorIs(t, repo.Update(ctx, other), domain.ErrConflict)
}

func TestCustomerRepo_UpdateDeleteInexistente(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewCustomerRepository(newDB(t))

	c := fakeCustomer(1)
	c.ID = 999
	assert.ErrorIs(t, repo.Update(ctx, c), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 999), domain.ErrNotFound)
}

func TestOrderRepo_CrearYListar(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	customers := sqlite.NewCustomerRepository(db)
	orders := sqlite.NewOrderRepository(db)

	c := fakeCustomer(1)
	require.NoError(t, customers.Create(ctx, c))

	o1 := &entity.Order{OrderNumber: "ORD-001", TotalCents: 1500, CustomerID: c.ID}
	o2 := &entity.Order{OrderNumber: "ORD-002", TotalCents: 1_000_000, CustomerID: c.ID}
	require.NoError(t, orders.Create(ctx, o1))
	require.NoError(t, orders.Create(ctx, o2))

	got, err := orders.GetByID(ctx, o1.ID)
	require.NoError(t, err)
	assert.Equal(t, o1, got)

	missing, err := orders.GetByID(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, o1.ID, list[0].ID)
	assert.Equal(t, o2.ID, list[1].ID)
}

func TestOrderRepo_NumeroUnicoPorCliente(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	customers := sqlite.NewCustomerRepository(db)
	orders := sqlite.NewOrderRepository(db)

	a, b := fakeCustomer(1), fakeCustomer(2)
	require.NoError(t, customers.Create(ctx, a))
	require.NoError(t, customers.Create(ctx, b))

	require.NoError(t, orders.Create(ctx, &entity.Order{OrderNumber: "ORD-1", TotalCents: 1, CustomerID: a.ID}))
	assert.ErrorIs(t, orders.Create(ctx, &entity.Order{OrderNumber: "ORD-1", TotalCents: 2, CustomerID: a.ID}), domain.ErrConflict)
	assert.NoError(t, orders.Create(ctx, &entity.Order{OrderNumber: "ORD-1", TotalCents: 3, CustomerID: b.ID}),
		"el mismo número en otro cliente es válido")
}

func TestOrderRepo_ClienteInexistenteEsConflicto(t *testing.T) {
	orders := sqlite.NewOrderRepository(newDB(t))
	err := orders.Create(context.Background(), &entity.Order{OrderNumber: "ORD-1", TotalCents: 1, CustomerID: 777})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCustomerRepo_DeleteConPedidosEsConflicto(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	customers := sqlite.NewCustomerRepository(db)
	orders := sqlite.NewOrderRepository(db)

	c := fakeCustomer(1)
	require.NoError(t, customers.Create(ctx, c))
	require.NoError(t, orders.Create(ctx, &entity.Order{OrderNumber: "ORD-1", TotalCents: 1, CustomerID: c.ID}))

	assert.ErrorIs(t, customers.Delete(ctx, c.ID), domain.ErrConflict)

	got, err := customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, got, "el cliente sigue existiendo")
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	runner := sqlite.NewTxRunner(db)

	var created *entity.Customer
	err := runner.Run(ctx, "", func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		created = fakeCustomer(1)
		return customers.Create(ctx, created)
	})
	require.NoError(t, err)

	boom := errors.New("fallo a mitad")
	err = runner.Run(ctx, "", func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		if err := customers.Create(ctx, fakeCustomer(2)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := sqlite.NewCustomerRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "la segunda transacción no deja rastro")
	assert.Equal(t, created.ID, list[0].ID)
}

func TestTxRunner_ConflictoConMensaje(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	runner := sqlite.NewTxRunner(db)

	c := fakeCustomer(1)
	require.NoError(t, sqlite.NewCustomerRepository(db).Create(ctx, c))

	err := runner.Run(ctx, "email en uso", func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		dup := fakeCustomer(2)
		dup.Email = c.Email
		return customers.Create(ctx, dup)
	})

	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "email en uso", cerr.Message)
}

func TestTxRunner_NotFoundPasaSinCambios(t *testing.T) {
	runner := sqlite.NewTxRunner(newDB(t))
	err := runner.Run(context.Background(), "conflicto", func(_ repository.CustomerRepository, _ repository.OrderRepository) error {
		return &domain.NotFoundError{Message: "cliente no encontrado"}
	})

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.False(t, errors.Is(err, domain.ErrConflict))
}
