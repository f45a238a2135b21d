package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.PharmacyRepository = (*PharmacyRepo)(nil)

// PharmacyRepo colección dinámica de farmacias en memoria del proceso.
type PharmacyRepo struct {
	mu   sync.RWMutex
	list []entity.Pharmacy
}

// NewPharmacyRepository construye el repositorio, opcionalmente con contenido inicial.
func NewPharmacyRepository(initial ...entity.Pharmacy) *PharmacyRepo {
	r := &PharmacyRepo{}
	r.list = append(r.list, initial...)
	return r
}

// LoadAll devuelve una copia de la colección.
func (r *PharmacyRepo) LoadAll(_ context.Context) ([]entity.Pharmacy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Pharmacy, len(r.list))
	copy(out, r.list)
	return out, nil
}

// ReplaceAll sustituye la colección completa.
func (r *PharmacyRepo) ReplaceAll(_ context.Context, pharmacies []entity.Pharmacy) error {
	next := make([]entity.Pharmacy, len(pharmacies))
	copy(next, pharmacies)
	r.mu.Lock()
	r.list = next
	r.mu.Unlock()
	return nil
}
