package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/customer-orders-api/internal/application/dto"
	"github.com/jhoicas/customer-orders-api/internal/application/validation"
	"github.com/jhoicas/customer-orders-api/internal/domain"
	"github.com/jhoicas/customer-orders-api/internal/domain/entity"
	"github.com/jhoicas/customer-orders-api/internal/domain/repository"
)

const (
	MsgOrderNotFound     = "pedido no encontrado"
	MsgOrderCreateFailed = "no se pudo crear el pedido"
)

// OrderUseCase casos de uso para pedidos. Un pedido no cambia de cliente tras crearse.
type OrderUseCase struct {
	tx       repository.TxRunner
	validate *validation.Validator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(tx repository.TxRunner, validate *validation.Validator) *OrderUseCase {
	return &OrderUseCase{tx: tx, validate: validate}
}

// Create crea un pedido. Comprueba antes que el cliente exista (404); la FK de la BD
// cubre la carrera en que el cliente se borra entre la comprobación y el insert (409).
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	in.Normalize()
	if err := uc.validateCreate(in); err != nil {
		return nil, err
	}
	order := &entity.Order{
		OrderNumber: in.OrderNumber,
		TotalCents:  in.TotalCents,
		CustomerID:  *in.CustomerID,
	}
	err := uc.tx.Run(ctx, MsgOrderCreateFailed, func(customers repository.CustomerRepository, orders repository.OrderRepository) error {
		if _, err := findCustomer(ctx, customers, order.CustomerID); err != nil {
			return err
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene un pedido por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.tx.Run(ctx, "", func(_ repository.CustomerRepository, orders repository.OrderRepository) error {
		var err error
		order, err = orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.NotFoundError{Message: MsgOrderNotFound}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List lista todos los pedidos ordenados por ID ascendente.
func (uc *OrderUseCase) List(ctx context.Context) ([]*dto.OrderResponse, error) {
	var list []*entity.Order
	err := uc.tx.Run(ctx, "", func(_ repository.CustomerRepository, orders repository.OrderRepository) error {
		var err error
		list, err = orders.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// validateCreate junta los errores de las etiquetas con la ausencia de customer_id.
func (uc *OrderUseCase) validateCreate(in dto.CreateOrderRequest) error {
	verr := &domain.ValidationError{}
	if err := uc.validate.Struct(in); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
	}
	if in.CustomerID == nil {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "customer_id", Message: "es requerido"})
	}
	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		TotalCents:  o.TotalCents,
		CustomerID:  o.CustomerID,
	}
}
