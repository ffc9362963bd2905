package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/customer-orders-api/internal/metrics"
	"github.com/jhoicas/customer-orders-api/pkg/logger"
)

// requestIDKey clave de Locals donde el middleware requestid guarda el id.
const requestIDKey = "requestid"

// RequestLogger registra una línea por petición y alimenta las métricas HTTP.
// Resuelve aquí el error de la cadena (igual que el logger de Fiber) para conocer el status final.
func RequestLogger(log *logger.Logger, m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path
		m.ObserveRequest(c.Method(), route, status, elapsed)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http request")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}
