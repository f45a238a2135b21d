package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// MaxScanImageBytes tamaño máximo aceptado para la foto de la lista de precios.
const MaxScanImageBytes = 8 << 20

// InventoryHandler maneja el inventario de la farmacia autenticada (protegido).
type InventoryHandler struct {
	store  *appinventory.Store
	scan   *appinventory.ScanUseCase
	report *appinventory.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(store *appinventory.Store, scan *appinventory.ScanUseCase, report *appinventory.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{store: store, scan: scan, report: report}
}

// List godoc
// @Summary      Inventario de mi farmacia
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/owner/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	pharmacyID := GetPharmacyID(c)
	items := h.store.ListByPharmacy(pharmacyID)
	return c.JSON(dto.InventoryListResponse{PharmacyID: pharmacyID, Total: len(items), Items: items})
}

// Upsert godoc
// @Summary      Cargar o actualizar medicamentos
// @Description  Por cada ítem reemplaza precio y stock si el medicamento ya estaba registrado
//
//	para la farmacia; si no, lo agrega. Stock vacío = "In Stock".
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertInventoryRequest  true  "items: medicineName, price, stock"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/owner/inventory [put]
func (h *InventoryHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items, err := toPriceListItems(in.Items)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.store.Upsert(c.UserContext(), GetPharmacyID(c), items); err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"upserted": len(items)})
}

// Scan godoc
// @Summary      Digitalizar lista de precios desde una foto
// @Description  Envía la imagen al servicio de IA configurado (AI_PROVIDER) y carga los ítems
//
//	reconocidos como en PUT /api/owner/inventory. Timeout interno de 20 s.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Foto de la lista de precios (JPEG/PNG/WebP)"
// @Success      200    {object}  dto.ScanResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      408    {object}  dto.ErrorResponse
// @Failure      502    {object}  dto.ErrorResponse
// @Failure      503    {object}  dto.ErrorResponse
// @Router       /api/owner/inventory/scan [post]
func (h *InventoryHandler) Scan(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo image requerido"})
	}
	if fh.Size > MaxScanImageBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "IMAGE_TOO_LARGE", Message: "la imagen supera 8 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer la imagen"})
	}
	defer f.Close()
	image, err := io.ReadAll(io.LimitReader(f, MaxScanImageBytes))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer la imagen"})
	}

	mimeType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(image)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el archivo no es una imagen"})
	}

	items, err := h.scan.Scan(c.UserContext(), GetPharmacyID(c), image, mimeType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "imagen vacía"})
		case errors.Is(err, domain.ErrStoreWrite):
			return storeError(c, err)
		case isTimeout(err):
			return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
				Code: "TIMEOUT", Message: "el servicio de IA tardó demasiado; intenta de nuevo",
			})
		case strings.Contains(err.Error(), "API_KEY"):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "AI_UNAVAILABLE", Message: "el servicio de lectura de listas no está configurado",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "AI_FAILED", Message: err.Error()})
	}
	return c.JSON(dto.ScanResponse{Imported: len(items), Items: items})
}

// UpdateStock godoc
// @Summary      Cambiar disponibilidad de un medicamento
// @Description  Si el medicamento no está registrado para la farmacia no se hace nada (updated=false).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        medicine  path  string                  true  "Nombre del medicamento"
// @Param        body      body  dto.UpdateStockRequest  true  "stock: In Stock | Low Stock | Out of Stock"
// @Success      200       {object}  dto.UpdateStockResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/owner/inventory/{medicine} [patch]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	medicine, ok := medicineParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "medicamento inválido"})
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	status, err := entity.ParseStockStatus(in.Stock)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	updated, err := h.store.UpdateStock(c.UserContext(), GetPharmacyID(c), medicine, status)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(dto.UpdateStockResponse{Updated: updated})
}

// Remove godoc
// @Summary      Quitar un medicamento del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        medicine  path  string  true  "Nombre del medicamento"
// @Success      200       {object}  dto.RemoveResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/owner/inventory/{medicine} [delete]
func (h *InventoryHandler) Remove(c *fiber.Ctx) error {
	medicine, ok := medicineParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "medicamento inválido"})
	}
	removed, err := h.store.Remove(c.UserContext(), GetPharmacyID(c), medicine)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(dto.RemoveResponse{Removed: removed})
}

// Report godoc
// @Summary      Reporte PDF del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/owner/inventory/report.pdf [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	pharmacyID := GetPharmacyID(c)
	pdf, err := h.report.GenerateReport(c.UserContext(), pharmacyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "farmacia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="inventario-%d.pdf"`, pharmacyID))
	return c.Send(pdf)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// toPriceListItems valida el body de Upsert: nombre no vacío, precio >= 0, stock conocido o vacío.
func toPriceListItems(in []dto.PriceListItemRequest) ([]entity.PriceListItem, error) {
	items := make([]entity.PriceListItem, 0, len(in))
	for i, it := range in {
		if strings.TrimSpace(it.MedicineName) == "" {
			return nil, fmt.Errorf("items[%d]: medicineName es obligatorio", i)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("items[%d]: price no puede ser negativo", i)
		}
		var stock entity.StockStatus
		if it.Stock != "" {
			s, err := entity.ParseStockStatus(it.Stock)
			if err != nil {
				return nil, fmt.Errorf("items[%d]: %w", i, err)
			}
			stock = s
		}
		items = append(items, entity.PriceListItem{MedicineName: it.MedicineName, Price: it.Price, Stock: stock})
	}
	return items, nil
}

// medicineParam devuelve el nombre del path ya decodificado ("Paracetamol%20500mg").
// c.Params apunta al buffer de fasthttp, que se reutiliza entre requests: se copia.
func medicineParam(c *fiber.Ctx) (string, bool) {
	name, err := url.PathUnescape(utils.CopyString(c.Params("medicine")))
	if err != nil || strings.TrimSpace(name) == "" {
		return "", false
	}
	return name, true
}

// storeError traduce fallos de persistencia. La memoria ya refleja el cambio.
func storeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrStoreWrite) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "STORE_WRITE_FAILED", Message: "el cambio se aplicó pero no pudo guardarse",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// isTimeout detecta errores de timeout/cancelación de contexto.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}
