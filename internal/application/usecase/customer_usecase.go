package usecase

import (
	"context"

	"github.com/jhoicas/customer-orders-api/internal/application/dto"
	"github.com/jhoicas/customer-orders-api/internal/application/validation"
	"github.com/jhoicas/customer-orders-api/internal/domain"
	"github.com/jhoicas/customer-orders-api/internal/domain/entity"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
)

// Mensajes de error de clientes. MsgCustomerNotFound acompaña a *domain.NotFoundError; el resto
// son los mensajes de conflicto por operación que TxRunner devuelve como *domain.ConflictError.
const (
	MsgCustomerNotFound      = "cliente no encontrado"
	MsgCustomerEmailTaken    = "ya existe un cliente con ese email"
	MsgCustomerReplaceFailed = "no se pudo reemplazar el cliente"
	MsgCustomerPatchFailed   = "no se pudo actualizar el cliente"
	MsgCustomerHasOrders     = "el cliente tiene pedidos asociados"
)

// CustomerUseCase casos de uso CRUD para clientes. Cada método usa una única transacción.
type CustomerUseCase struct {
	tx       repository.TxRunner
	validate *validation.Validator
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(tx repository.TxRunner, validate *validation.Validator) *CustomerUseCase {
	return &CustomerUseCase{tx: tx, validate: validate}
}

// Create crea un nuevo cliente. Email duplicado -> *domain.ConflictError.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Normalize()
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	customer := &entity.Customer{
		Name:          in.Name,
		Email:         in.Email,
		CustomerSince: in.CustomerSince,
	}
	err := uc.tx.Run(ctx, MsgCustomerEmailTaken, func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		return customers.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	var customer *entity.Customer
	err := uc.tx.Run(ctx, "", func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		var err error
		customer, err = findCustomer(ctx, customers, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista todos los clientes ordenados por ID ascendente.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	var list []*entity.Customer
	err := uc.tx.Run(ctx, "", func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		var err error
		list, err = customers.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Replace sobrescribe todos los campos editables del cliente con los del payload (PUT).
func (uc *CustomerUseCase) Replace(ctx context.Context, id int64, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Normalize()
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	var customer *entity.Customer
	err := uc.tx.Run(ctx, MsgCustomerReplaceFailed, func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		var err error
		customer, err = findCustomer(ctx, customers, id)
		if err != nil {
			return err
		}
		customer.Name = in.Name
		customer.Email = in.Email
		customer.CustomerSince = in.CustomerSince
		return customers.Update(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Patch aplica solo los campos presentes en el payload; el resto conserva su valor (PATCH).
func (uc *CustomerUseCase) Patch(ctx context.Context, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Normalize()
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	var customer *entity.Customer
	err := uc.tx.Run(ctx, MsgCustomerPatchFailed, func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		var err error
		customer, err = findCustomer(ctx, customers, id)
		if err != nil {
			return err
		}
		if !applyPatch(customer, in) {
			return nil
		}
		return customers.Update(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente. Si tiene pedidos la FK lo impide -> *domain.ConflictError.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, MsgCustomerHasOrders, func(customers repository.CustomerRepository, _ repository.OrderRepository) error {
		if _, err := findCustomer(ctx, customers, id); err != nil {
			return err
		}
		return customers.Delete(ctx, id)
	})
}

// applyPatch copia los campos presentes y devuelve si hubo alguno.
func applyPatch(c *entity.Customer, in dto.UpdateCustomerRequest) bool {
	changed := false
	if v, ok := in.Name.Get(); ok {
		c.Name = v
		changed = true
	}
	if v, ok := in.Email.Get(); ok {
		c.Email = v
		changed = true
	}
	if v, ok := in.CustomerSince.Get(); ok {
		c.CustomerSince = v
		changed = true
	}
	return changed
}

func findCustomer(ctx context.Context, customers repository.CustomerRepository, id int64) (*entity.Customer, error) {
	c, err := customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Message: MsgCustomerNotFound}
	}
	return c, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		CustomerSince: c.CustomerSince,
	}
}
