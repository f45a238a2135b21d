package ports

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// InventoryReportGenerator genera el documento imprimible (PDF) con el inventario de una farmacia.
type InventoryReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, pharmacy *entity.Pharmacy, items []entity.MedicineStock) ([]byte, error)
}
