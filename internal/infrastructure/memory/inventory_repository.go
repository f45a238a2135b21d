package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo inventario global en memoria del proceso.
type InventoryRepo struct {
	mu   sync.RWMutex
	data map[string][]entity.InventoryRecord
}

// NewInventoryRepository construye el repositorio vacío.
func NewInventoryRepository() *InventoryRepo {
	return &InventoryRepo{data: make(map[string][]entity.InventoryRecord)}
}

// LoadAll devuelve una copia profunda del mapa.
func (r *InventoryRepo) LoadAll(_ context.Context) (map[string][]entity.InventoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]entity.InventoryRecord, len(r.data))
	for key, list := range r.data {
		out[key] = cloneRecords(list)
	}
	return out, nil
}

// SaveMedicines reemplaza las listas indicadas bajo un único lock; una lista vacía borra la clave.
func (r *InventoryRepo) SaveMedicines(_ context.Context, lists map[string][]entity.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, list := range lists {
		if len(list) == 0 {
			delete(r.data, key)
			continue
		}
		r.data[key] = cloneRecords(list)
	}
	return nil
}

// Keys devuelve las claves persistidas (útil para verificar que no quedan listas vacías).
func (r *InventoryRepo) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	return keys
}

func cloneRecords(list []entity.InventoryRecord) []entity.InventoryRecord {
	out := make([]entity.InventoryRecord, len(list))
	copy(out, list)
	return out
}
