package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StockStatus estado de existencias de un medicamento en una farmacia.
// Solo se compara por igualdad; no hay orden definido.
type StockStatus string

// Valores válidos de StockStatus (son también el formato persistido).
const (
	InStock    StockStatus = "In Stock"
	LowStock   StockStatus = "Low Stock"
	OutOfStock StockStatus = "Out of Stock"
)

// ParseStockStatus convierte el texto persistido/recibido en StockStatus.
func ParseStockStatus(s string) (StockStatus, error) {
	switch StockStatus(s) {
	case InStock, LowStock, OutOfStock:
		return StockStatus(s), nil
	}
	return "", fmt.Errorf("estado de stock desconocido: %q", s)
}

// Valid indica si el estado es uno de los tres conocidos.
func (s StockStatus) Valid() bool {
	_, err := ParseStockStatus(string(s))
	return err == nil
}

// InventoryRecord precio y estado de un medicamento en una farmacia.
// Hay como máximo uno por (medicamento, farmacia).
type InventoryRecord struct {
	PharmacyID int64           `json:"pharmacyId"`
	Price      decimal.Decimal `json:"price"`
	Stock      StockStatus     `json:"stock"`
}

// PriceListItem ítem de una lista de precios (cargada a mano o extraída de una foto).
// Stock vacío equivale a InStock.
type PriceListItem struct {
	MedicineName string          `json:"medicineName"`
	Price        decimal.Decimal `json:"price"`
	Stock        StockStatus     `json:"stock,omitempty"`
}

// MedicineStock registro de inventario junto con la clave del medicamento
// (vista por farmacia del inventario global).
type MedicineStock struct {
	MedicineKey string `json:"medicineKey"`
	InventoryRecord
}
