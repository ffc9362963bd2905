package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_AusentePresenteNull(t *testing.T) {
	var in UpdateCustomerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"X","email":null}`), &in))

	name, ok := in.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "X", name)

	_, ok = in.Email.Get()
	assert.False(t, ok, "null no se aplica")
	assert.True(t, in.Email.IsNull())

	_, ok = in.CustomerSince.Get()
	assert.False(t, ok, "ausente no se aplica")
	assert.False(t, in.CustomerSince.Set)
	assert.False(t, in.CustomerSince.IsNull())
}

func TestOptional_TipoIncorrecto(t *testing.T) {
	var in UpdateCustomerRequest
	err := json.Unmarshal([]byte(`{"customer_since":"2020"}`), &in)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "customer_since", typeErr.Field)
}

func TestOptional_ValidationValue(t *testing.T) {
	assert.Nil(t, Optional[int]{}.ValidationValue())
	assert.Nil(t, Optional[int]{Set: true, Null: true}.ValidationValue())

	v, ok := Some(0).ValidationValue().(*int)
	require.True(t, ok)
	assert.Equal(t, 0, *v)
}

func TestOptional_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(UpdateCustomerRequest{Name: Some("Ana")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","email":null,"customer_since":null}`, string(out))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Ana.Perez@example.com", normalizeEmail("Ana.Perez@EXAMPLE.com"))
	assert.Equal(t, "sin-arroba", normalizeEmail("sin-arroba"))
}
