package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/customer-orders-api/internal/application/dto"
	"github.com/jhoicas/customer-orders-api/internal/domain"
	"github.com/jhoicas/customer-orders-api/internal/metrics"
	"github.com/jhoicas/customer-orders-api/pkg/logger"
)

// Códigos de error del cuerpo JSON.
const (
	codeValidation       = "VALIDATION"
	codeNotFound         = "NOT_FOUND"
	codeConflict         = "CONFLICT"
	codeInvalidBody      = "INVALID_BODY"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeInternal         = "INTERNAL"
)

// bodyError marca un cuerpo que no se pudo decodificar (JSON mal formado o Content-Type incorrecto).
type bodyError struct {
	err error
}

func (e *bodyError) Error() string { return "cuerpo inválido: " + e.err.Error() }

func (e *bodyError) Unwrap() error { return e.err }

// ErrorHandler traduce cualquier error devuelto por un handler a dto.ErrorResponse.
// Los errores inesperados se registran y se devuelven como 500 sin exponer el detalle.
func ErrorHandler(log *logger.Logger, m *metrics.HTTPMetrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, outcome, body := toErrorResponse(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", requestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error inesperado")
		}
		m.ObserveFailure(outcome)
		return c.Status(status).JSON(body)
	}
}

func toErrorResponse(err error) (int, string, dto.ErrorResponse) {
	var (
		verr *domain.ValidationError
		nf   *domain.NotFoundError
		ce   *domain.ConflictError
		be   *bodyError
		fe   *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity, metrics.OutcomeValidation, dto.ErrorResponse{
			Code: codeValidation, Message: "payload inválido", Details: verr.Fields,
		}
	case errors.As(err, &nf):
		return fiber.StatusNotFound, metrics.OutcomeNotFound, dto.ErrorResponse{Code: codeNotFound, Message: nf.Message}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, metrics.OutcomeNotFound, dto.ErrorResponse{Code: codeNotFound, Message: domain.ErrNotFound.Error()}
	case errors.As(err, &ce):
		return fiber.StatusConflict, metrics.OutcomeConflict, dto.ErrorResponse{Code: codeConflict, Message: ce.Message}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, metrics.OutcomeConflict, dto.ErrorResponse{Code: codeConflict, Message: domain.ErrConflict.Error()}
	case errors.As(err, &be):
		return fiber.StatusBadRequest, metrics.OutcomeBadRequest, dto.ErrorResponse{Code: codeInvalidBody, Message: "cuerpo inválido"}
	case errors.As(err, &fe):
		return fromFiberError(fe)
	default:
		return fiber.StatusInternalServerError, metrics.OutcomeInternal, dto.ErrorResponse{Code: codeInternal, Message: "error interno"}
	}
}

func fromFiberError(fe *fiber.Error) (int, string, dto.ErrorResponse) {
	switch fe.Code {
	case fiber.StatusNotFound:
		return fe.Code, metrics.OutcomeNotFound, dto.ErrorResponse{Code: codeNotFound, Message: "ruta no encontrada"}
	case fiber.StatusMethodNotAllowed:
		return fe.Code, metrics.OutcomeBadRequest, dto.ErrorResponse{Code: codeMethodNotAllowed, Message: "método no permitido"}
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusUnsupportedMediaType, fiber.StatusRequestEntityTooLarge:
		return fe.Code, metrics.OutcomeBadRequest, dto.ErrorResponse{Code: codeInvalidBody, Message: fe.Message}
	}
	if fe.Code >= fiber.StatusInternalServerError {
		return fe.Code, metrics.OutcomeInternal, dto.ErrorResponse{Code: codeInternal, Message: "error interno"}
	}
	return fe.Code, metrics.OutcomeBadRequest, dto.ErrorResponse{Code: fmt.Sprintf("HTTP_%d", fe.Code), Message: fe.Message}
}
