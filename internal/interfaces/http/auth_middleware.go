package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/pkg/jwt"
)

// Locals keys para la farmacia del token en Fiber.
const (
	LocalPharmacyID = "pharmacy_id"
	LocalOwnerName  = "owner_name"
)

// AuthMiddleware valida el Bearer Token JWT y extrae PharmacyID y OwnerName a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalPharmacyID, claims.PharmacyID)
		c.Locals(LocalOwnerName, claims.OwnerName)
		return c.Next()
	}
}

// GetPharmacyID devuelve la farmacia del contexto (después del middleware de auth); 0 si no hay.
func GetPharmacyID(c *fiber.Ctx) int64 {
	v := c.Locals(LocalPharmacyID)
	if v == nil {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// GetOwnerName devuelve el nombre del dueño del contexto (después del middleware de auth).
func GetOwnerName(c *fiber.Ctx) string {
	v := c.Locals(LocalOwnerName)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
