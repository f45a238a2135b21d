package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// RateLimit limita peticiones por IP. rate usa el formato de ulule/limiter ("60-M", "10-S").
func RateLimit(rate string) (fiber.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), r)

	return func(c *fiber.Ctx) error {
		lc, err := instance.Get(c.UserContext(), c.IP())
		if err != nil {
			// Store en memoria: un fallo aquí no debe tumbar la búsqueda.
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))
		if lc.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiadas búsquedas; intenta en unos segundos",
			})
		}
		return c.Next()
	}, nil
}
