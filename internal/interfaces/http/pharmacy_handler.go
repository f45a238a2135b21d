package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/pharmacy"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/geo"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/jwt"
)

// PharmacyHandler maneja el directorio público y el ingreso de dueños.
type PharmacyHandler struct {
	directory *pharmacy.Directory
	registrar *pharmacy.Registrar
	jwtCfg    config.JWTConfig
}

// NewPharmacyHandler construye el handler.
func NewPharmacyHandler(directory *pharmacy.Directory, registrar *pharmacy.Registrar, jwtCfg config.JWTConfig) *PharmacyHandler {
	return &PharmacyHandler{directory: directory, registrar: registrar, jwtCfg: jwtCfg}
}

// List godoc
// @Summary      Listar farmacias
// @Description  Farmacias semilla seguidas de las registradas por dueños, en orden de registro.
// @Tags         pharmacies
// @Produce      json
// @Success      200  {object}  dto.PharmacyListResponse
// @Router       /api/pharmacies [get]
func (h *PharmacyHandler) List(c *fiber.Ctx) error {
	list := h.directory.ListAll()
	return c.JSON(dto.PharmacyListResponse{Total: len(list), Pharmacies: list})
}

// Session godoc
// @Summary      Ingreso de dueño de farmacia
// @Description  Devuelve la farmacia con ese nombre (sin distinguir mayúsculas) o la registra con
//
//	un ID nuevo (> 1000). Emite un JWT con pharmacy_id para las rutas de inventario.
//
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OwnerSessionRequest  true  "name, phone, address, lat, lon"
// @Success      200   {object}  dto.OwnerSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/owners/session [post]
func (h *PharmacyHandler) Session(c *fiber.Ctx) error {
	var in dto.OwnerSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Name) == "" || in.Lat == nil || in.Lon == nil || !validCoordinate(*in.Lat, *in.Lon) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, lat y lon son obligatorios"})
	}

	p, err := h.registrar.RegisterOrGet(c.UserContext(),
		entity.OwnerDetails{Name: in.Name, Phone: in.Phone, Address: in.Address},
		geo.Coordinate{Lat: *in.Lat, Lon: *in.Lon},
	)
	// Con ErrStoreWrite la farmacia ya está en memoria: se emite la sesión igual.
	var warning string
	if err != nil {
		if !errors.Is(err, domain.ErrStoreWrite) || p == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		warning = "la farmacia quedó registrada pero no pudo guardarse; se perderá al reiniciar"
	}

	token, err := jwt.Generate(h.jwtCfg.Secret, p.ID, p.Name, h.jwtCfg.Issuer, h.jwtCfg.Expiration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo emitir el token"})
	}
	return c.JSON(dto.OwnerSessionResponse{
		Pharmacy:  *p,
		Token:     token,
		ExpiresIn: h.jwtCfg.Expiration * 60,
		Warning:   warning,
	})
}
