package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/customer-orders-api/internal/application/dto"
	"github.com/jhoicas/customer-orders-api/internal/domain"
)

// Validator evalúa las etiquetas `validate` de los DTO y traduce los fallos a *domain.ValidationError.
// Es seguro para uso concurrente (validator.Validate cachea la metainformación de cada struct).
type Validator struct {
	v *validator.Validate
}

// optionalValue lo implementan los dto.Optional.
type optionalValue interface {
	ValidationValue() any
	IsNull() bool
}

// New construye el validador con los nombres de campo tomados de la etiqueta json.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(optionalValue); ok {
			return o.ValidationValue()
		}
		return nil
	}, dto.Optional[string]{}, dto.Optional[int]{}, dto.Optional[int64]{})
	return &Validator{v: v}
}

// Struct valida s. Devuelve nil, un *domain.ValidationError con un item por campo,
// o un error inesperado si s no es validable.
func (x *Validator) Struct(s any) error {
	fields := nullFields(s)

	err := x.v.Struct(s)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validar payload: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, domain.FieldError{Field: fe.Field(), Message: message(fe)})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

// nullFields detecta campos Optional enviados como null: ningún campo del modelo admite null.
func nullFields(s any) []domain.FieldError {
	rv := reflect.Indirect(reflect.ValueOf(s))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	var out []domain.FieldError
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if o, ok := rv.Field(i).Interface().(optionalValue); ok && o.IsNull() {
			out = append(out, domain.FieldError{Field: jsonFieldName(sf), Message: "no puede ser null"})
		}
	}
	return out
}

func jsonFieldName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		if isString {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	default:
		return fmt.Sprintf("no cumple la regla %q", fe.Tag())
	}
}
