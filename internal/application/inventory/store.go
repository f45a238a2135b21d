package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// Store inventario global: clave de medicamento -> registros por farmacia.
//
// El mapa en memoria es la fuente de verdad del proceso; cada mutación se persiste en el
// repositorio después de aplicarse. Las listas publicadas nunca se modifican en sitio
// (copy-on-write), así que los lectores siempre ven una lista completa.
type Store struct {
	repo  repository.InventoryRepository
	log   zerolog.Logger
	locks *keyLocks

	mu   sync.RWMutex
	data map[string][]entity.InventoryRecord
}

// NewStore construye el inventario vacío. Llamar a Load para traer lo persistido.
func NewStore(repo repository.InventoryRepository, log zerolog.Logger) *Store {
	return &Store{
		repo:  repo,
		log:   log,
		locks: newKeyLocks(),
		data:  make(map[string][]entity.InventoryRecord),
	}
}

// Load reemplaza el contenido en memoria por el del repositorio. Si la lectura falla el
// inventario queda vacío y se devuelve un error que envuelve domain.ErrStoreRead.
func (s *Store) Load(ctx context.Context) error {
	loaded, readErr := s.repo.LoadAll(ctx)
	if readErr != nil {
		loaded = nil
	}
	data := make(map[string][]entity.InventoryRecord, len(loaded))
	for key, list := range loaded {
		if len(list) == 0 {
			continue
		}
		data[key] = list
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	s.log.Info().Int("medicamentos", len(data)).Msg("inventario cargado")
	if readErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreRead, readErr)
	}
	return nil
}

// Upsert aplica un lote de ítems de la farmacia: si ya hay registro para (medicamento,
// farmacia) se sobrescriben precio y stock conservando la posición; si no, se agrega al
// final. Stock vacío se toma como InStock. Las claves tocadas se persisten en un solo lote.
func (s *Store) Upsert(ctx context.Context, pharmacyID int64, items []entity.PriceListItem) error {
	if len(items) == 0 {
		return nil
	}
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = inventory.Key(it.MedicineName)
	}
	unlock := s.locks.lock(keys...)
	defer unlock()

	changed := make(map[string][]entity.InventoryRecord)
	for i, it := range items {
		key := keys[i]
		list, ok := changed[key]
		if !ok {
			list = s.snapshot(key)
		}
		stock := it.Stock
		if stock == "" {
			stock = entity.InStock
		}
		if idx := indexOf(list, pharmacyID); idx >= 0 {
			list[idx].Price = it.Price
			list[idx].Stock = stock
		} else {
			list = append(list, entity.InventoryRecord{PharmacyID: pharmacyID, Price: it.Price, Stock: stock})
		}
		changed[key] = list
	}

	s.publish(changed)
	s.log.Debug().Int64("pharmacy_id", pharmacyID).Int("items", len(items)).Int("medicamentos", len(changed)).Msg("inventario actualizado")
	return s.persist(ctx, changed)
}

// UpdateStock cambia el stock del registro (medicamento, farmacia). Si no existe no hace
// nada y devuelve false.
func (s *Store) UpdateStock(ctx context.Context, pharmacyID int64, medicineName string, status entity.StockStatus) (bool, error) {
	key := inventory.Key(medicineName)
	unlock := s.locks.lock(key)
	defer unlock()

	list := s.snapshot(key)
	idx := indexOf(list, pharmacyID)
	if idx < 0 {
		return false, nil
	}
	list[idx].Stock = status

	changed := map[string][]entity.InventoryRecord{key: list}
	s.publish(changed)
	return true, s.persist(ctx, changed)
}

// Remove elimina el registro (medicamento, farmacia). Si la lista queda vacía la clave
// desaparece del mapa. Devuelve false si no había nada que eliminar.
func (s *Store) Remove(ctx context.Context, pharmacyID int64, medicineName string) (bool, error) {
	key := inventory.Key(medicineName)
	unlock := s.locks.lock(key)
	defer unlock()

	list := s.snapshot(key)
	idx := indexOf(list, pharmacyID)
	if idx < 0 {
		return false, nil
	}
	list = append(list[:idx], list[idx+1:]...)

	changed := map[string][]entity.InventoryRecord{key: list}
	s.publish(changed)
	return true, s.persist(ctx, changed)
}

// Lookup devuelve una copia de los registros del medicamento, o vacío si no existe.
func (s *Store) Lookup(medicineName string) []entity.InventoryRecord {
	return s.snapshot(inventory.Key(medicineName))
}

// ListByPharmacy devuelve todos los medicamentos que tiene registrados una farmacia,
// ordenados por clave.
func (s *Store) ListByPharmacy(pharmacyID int64) []entity.MedicineStock {
	s.mu.RLock()
	out := make([]entity.MedicineStock, 0)
	for key, list := range s.data {
		if idx := indexOf(list, pharmacyID); idx >= 0 {
			out = append(out, entity.MedicineStock{MedicineKey: key, InventoryRecord: list[idx]})
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].MedicineKey < out[j].MedicineKey })
	return out
}

// HasMedicine indica si la clave existe en el mapa (una clave nunca queda con lista vacía).
func (s *Store) HasMedicine(medicineName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[inventory.Key(medicineName)]
	return ok
}

// snapshot copia la lista publicada para la clave.
func (s *Store) snapshot(key string) []entity.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.data[key]
	out := make([]entity.InventoryRecord, len(list))
	copy(out, list)
	return out
}

func (s *Store) publish(changed map[string][]entity.InventoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, list := range changed {
		if len(list) == 0 {
			delete(s.data, key)
			continue
		}
		s.data[key] = list
	}
}

func (s *Store) persist(ctx context.Context, changed map[string][]entity.InventoryRecord) error {
	if err := s.repo.SaveMedicines(ctx, changed); err != nil {
		s.log.Error().Err(err).Int("medicamentos", len(changed)).Msg("persistir inventario")
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return nil
}

func indexOf(list []entity.InventoryRecord, pharmacyID int64) int {
	for i, r := range list {
		if r.PharmacyID == pharmacyID {
			return i
		}
	}
	return -1
}
