package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/customer-orders-api/internal/domain"
)

// parseID lee el parámetro :id. Cualquier entero es válido; si no existe el caso de uso devuelve 404.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id", "debe ser un entero")
	}
	return id, nil
}

// parseBody decodifica el JSON del cuerpo. Un tipo incorrecto en un campo es un error de
// validación (422); un JSON mal formado es un bodyError (400).
func parseBody(c *fiber.Ctx, out any) error {
	err := c.BodyParser(out)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domain.NewValidationError(field, fmt.Sprintf("debe ser de tipo %s", jsonTypeName(typeErr.Type)))
	}
	return &bodyError{err: err}
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "desconocido"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "entero"
	case reflect.Float32, reflect.Float64:
		return "número"
	case reflect.Bool:
		return "booleano"
	case reflect.Pointer:
		return jsonTypeName(t.Elem())
	case reflect.Struct, reflect.Map:
		return "objeto"
	case reflect.Slice, reflect.Array:
		return "lista"
	default:
		return t.String()
	}
}
