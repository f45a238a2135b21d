package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// pharmacyChecker es el contrato mínimo que necesita el middleware; lo implementa *pharmacy.Directory.
type pharmacyChecker interface {
	Get(id int64) (*entity.Pharmacy, bool)
}

// RequirePharmacy verifica que la farmacia del token siga registrada en el directorio.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalPharmacyID).
//
// Comportamiento:
//   - 401 Unauthorized → no hay pharmacy_id en el contexto.
//   - 404 Not Found    → la farmacia no existe (p. ej. token emitido contra otro almacenamiento).
func RequirePharmacy(checker pharmacyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetPharmacyID(c)
		if id <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "pharmacy_id no encontrado en el token",
			})
		}
		if _, ok := checker.Get(id); !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "PHARMACY_NOT_FOUND",
				Message: "la farmacia del token no está registrada",
			})
		}
		return c.Next()
	}
}
