package inventory

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/application/ports"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// PharmacyFinder busca una farmacia por ID (lo implementa *pharmacy.Directory).
type PharmacyFinder interface {
	Get(id int64) (*entity.Pharmacy, bool)
}

// ReportUseCase genera el PDF con el inventario actual de una farmacia.
type ReportUseCase struct {
	pharmacies PharmacyFinder
	store      *Store
	generator  ports.InventoryReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(pharmacies PharmacyFinder, store *Store, generator ports.InventoryReportGenerator) *ReportUseCase {
	return &ReportUseCase{pharmacies: pharmacies, store: store, generator: generator}
}

// GenerateReport devuelve los bytes del PDF. domain.ErrNotFound si la farmacia no existe.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, pharmacyID int64) ([]byte, error) {
	p, ok := uc.pharmacies.Get(pharmacyID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateInventoryReport(ctx, p, uc.store.ListByPharmacy(pharmacyID))
}
