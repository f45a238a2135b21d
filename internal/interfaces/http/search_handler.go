package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/search"
	"github.com/jhoicas/Farmacia-api/internal/domain/geo"
)

// SearchHandler maneja la búsqueda pública de medicamentos.
type SearchHandler struct {
	engine *search.Engine
}

// NewSearchHandler construye el handler.
func NewSearchHandler(engine *search.Engine) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// Search godoc
// @Summary      Buscar farmacias cercanas con un medicamento
// @Description  Devuelve hasta 10 farmacias con el medicamento "In Stock", ordenadas por distancia.
//
//	Como máximo una se marca como mejor opción (balance entre distancia y precio).
//
// @Tags         search
// @Produce      json
// @Param        medicine  query  string  true  "Nombre del medicamento (sin distinguir mayúsculas)"
// @Param        lat       query  number  true  "Latitud del usuario"
// @Param        lon       query  number  true  "Longitud del usuario"
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var q dto.SearchQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	if strings.TrimSpace(q.Medicine) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "medicine es obligatorio"})
	}
	loc, ok := parseCoordinate(q.Lat, q.Lon)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lat y lon deben ser coordenadas válidas"})
	}

	results := h.engine.FindNearby(c.UserContext(), loc, q.Medicine)
	return c.JSON(dto.SearchResponse{
		Medicine: q.Medicine,
		Count:    len(results),
		Results:  results,
	})
}

// parseCoordinate valida lat ∈ [-90, 90] y lon ∈ [-180, 180].
func parseCoordinate(latRaw, lonRaw string) (geo.Coordinate, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonRaw), 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	if !validCoordinate(lat, lon) {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, true
}

func validCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
