package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customer-orders-api/internal/application/dto"
	"github.com/jhoicas/customer-orders-api/internal/application/validation"
	"github.com/jhoicas/customer-orders-api/internal/domain"
)

func validCustomer() dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{Name: "Ada Lovelace", Email: "ada@example.com", CustomerSince: 2015}
}

// fieldErrors exige un *domain.ValidationError y devuelve sus campos indexados por nombre.
func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba *domain.ValidationError, llegó %v", err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestStruct_CustomerValido(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Struct(validCustomer()))
}

func TestStruct_CustomerSinceLimitesInclusivos(t *testing.T) {
	v := validation.New()
	cases := []struct {
		year  int
		valid bool
	}{
		{1999, false},
		{2000, true},
		{2050, true},
		{2100, true},
		{2101, false},
	}
	for _, tc := range cases {
		in := validCustomer()
		in.CustomerSince = tc.year
		err := v.Struct(in)
		if tc.valid {
			assert.NoError(t, err, "año %d debe aceptarse", tc.year)
			continue
		}
		fields := fieldErrors(t, err)
		assert.Contains(t, fields, "customer_since", "año %d debe rechazarse", tc.year)
	}
}

func TestStruct_CamposRequeridos(t *testing.T) {
	v := validation.New()
	fields := fieldErrors(t, v.Struct(dto.CreateCustomerRequest{}))

	assert.Equal(t, "es requerido", fields["name"])
	assert.Equal(t, "es requerido", fields["email"])
	assert.Equal(t, "es requerido", fields["customer_since"])
}

func TestStruct_LongitudNombreEnCaracteres(t *testing.T) {
	v := validation.New()

	in := validCustomer()
	in.Name = strings.Repeat("ñ", 100)
	assert.NoError(t, v.Struct(in), "100 caracteres multibyte son válidos")

	in.Name = strings.Repeat("a", 101)
	fields := fieldErrors(t, v.Struct(in))
	assert.Equal(t, "debe tener como máximo 100 caracteres", fields["name"])
}

func TestStruct_NormalizaNFCAntesDeMedir(t *testing.T) {
	v := validation.New()
	in := validCustomer()
	// "e" + acento combinante: 200 runas en NFD, 100 en NFC.
	in.Name = strings.Repeat("e\u0301", 100)
	in.Normalize()
	assert.NoError(t, v.Struct(in))
	assert.Equal(t, strings.Repeat("\u00e9", 100), in.Name)
}

func TestStruct_EmailInvalido(t *testing.T) {
	v := validation.New()
	in := validCustomer()
	in.Email = "no-es-un-email"
	fields := fieldErrors(t, v.Struct(in))
	assert.Equal(t, "debe ser un email válido", fields["email"])
}

func TestStruct_UpdateSinCamposEsValido(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Struct(dto.UpdateCustomerRequest{}))
}

func TestStruct_UpdateValidaSoloCamposPresentes(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(dto.UpdateCustomerRequest{Name: dto.Some("X")}))

	fields := fieldErrors(t, v.Struct(dto.UpdateCustomerRequest{CustomerSince: dto.Some(1999)}))
	assert.Equal(t, "debe ser mayor o igual a 2000", fields["customer_since"])
	assert.NotContains(t, fields, "name")
}

func TestStruct_UpdateValorCeroPresenteSeValida(t *testing.T) {
	v := validation.New()
	fields := fieldErrors(t, v.Struct(dto.UpdateCustomerRequest{
		Name:  dto.Some(""),
		Email: dto.Some(""),
	}))
	assert.Contains(t, fields, "name", "un nombre vacío presente no se omite")
	assert.Contains(t, fields, "email")
}

func TestStruct_UpdateNullRechazado(t *testing.T) {
	v := validation.New()
	in := dto.UpdateCustomerRequest{Email: dto.Optional[string]{Set: true, Null: true}}
	fields := fieldErrors(t, v.Struct(in))
	assert.Equal(t, "no puede ser null", fields["email"])
}

func TestStruct_OrderLimites(t *testing.T) {
	v := validation.New()
	id := int64(1)
	base := dto.CreateOrderRequest{OrderNumber: "ORD-1", TotalCents: 500, CustomerID: &id}
	require.NoError(t, v.Struct(base))

	cases := []struct {
		name  string
		mod   func(*dto.CreateOrderRequest)
		field string
	}{
		{"order_number de 2", func(r *dto.CreateOrderRequest) { r.OrderNumber = "AB" }, "order_number"},
		{"order_number de 21", func(r *dto.CreateOrderRequest) { r.OrderNumber = strings.Repeat("A", 21) }, "order_number"},
		{"total 0", func(r *dto.CreateOrderRequest) { r.TotalCents = 0 }, "total_cents"},
		{"total negativo", func(r *dto.CreateOrderRequest) { r.TotalCents = -5 }, "total_cents"},
		{"total 1000001", func(r *dto.CreateOrderRequest) { r.TotalCents = 1_000_001 }, "total_cents"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mod(&in)
			assert.Contains(t, fieldErrors(t, v.Struct(in)), tc.field)
		})
	}

	for _, ok := range []func(*dto.CreateOrderRequest){
		func(r *dto.CreateOrderRequest) { r.OrderNumber = "ABC" },
		func(r *dto.CreateOrderRequest) { r.OrderNumber = strings.Repeat("A", 20) },
		func(r *dto.CreateOrderRequest) { r.TotalCents = 1 },
		func(r *dto.CreateOrderRequest) { r.TotalCents = 1_000_000 },
	} {
		in := base
		ok(&in)
		assert.NoError(t, v.Struct(in))
	}
}
