package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// PriceListItemRequest ítem de una lista de precios enviado por el dueño.
type PriceListItemRequest struct {
	MedicineName string          `json:"medicineName"`
	Price        decimal.Decimal `json:"price"`
	Stock        string          `json:"stock,omitempty"` // vacío = In Stock
}

// UpsertInventoryRequest body para PUT /api/owner/inventory.
type UpsertInventoryRequest struct {
	Items []PriceListItemRequest `json:"items"`
}

// UpdateStockRequest body para PATCH /api/owner/inventory/:medicine.
type UpdateStockRequest struct {
	Stock string `json:"stock"`
}

// InventoryListResponse inventario de la farmacia autenticada.
type InventoryListResponse struct {
	PharmacyID int64                  `json:"pharmacy_id"`
	Total      int                    `json:"total"`
	Items      []entity.MedicineStock `json:"items"`
}

// ScanResponse ítems reconocidos en la foto y cargados al inventario.
type ScanResponse struct {
	Imported int                    `json:"imported"`
	Items    []entity.PriceListItem `json:"items"`
}

// UpdateStockResponse resultado de PATCH; updated=false si el medicamento no estaba registrado.
type UpdateStockResponse struct {
	Updated bool `json:"updated"`
}

// RemoveResponse resultado de DELETE; removed=false si no existía.
type RemoveResponse struct {
	Removed bool `json:"removed"`
}
