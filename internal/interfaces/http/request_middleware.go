package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderRequestID cabecera de correlación; se respeta la del cliente si viene.
const HeaderRequestID = "X-Request-ID"

// LocalRequestID key del request id en c.Locals.
const LocalRequestID = "request_id"

// RequestObserver recibe cada petición terminada (lo implementa *metrics.Metrics).
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger asigna un request id, registra la petición con zerolog y la reporta al observer (puede ser nil).
func RequestLogger(log zerolog.Logger, observer RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(HeaderRequestID, reqID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		elapsed := time.Since(start)

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error().Err(err)
		}
		event = event.
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed)
		// Rutas de dueño: el middleware de auth dejó la farmacia en Locals.
		if id := GetPharmacyID(c); id > 0 {
			event = event.Int64("pharmacy_id", id).Str("owner_name", GetOwnerName(c))
		}
		event.Msg("petición HTTP")

		if observer != nil {
			observer.ObserveRequest(c.Method(), c.Route().Path, status, elapsed)
		}
		return err
	}
}
