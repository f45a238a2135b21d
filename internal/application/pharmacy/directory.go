package pharmacy

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// Directory conjunto de farmacias conocidas: semilla (fija, verificada) + dinámicas
// (registradas en ejecución). Las dos particiones se combinan al leer.
type Directory struct {
	repo repository.PharmacyRepository
	log  zerolog.Logger

	seed    []entity.Pharmacy
	seedIDs map[int64]struct{}

	mu      sync.RWMutex
	dynamic []entity.Pharmacy // copy-on-write: nunca se modifica en sitio

	// writeMu serializa registro (búsqueda + asignación de ID + escritura).
	writeMu sync.Mutex
}

// NewDirectory construye el directorio con el conjunto semilla. La partición dinámica
// empieza vacía hasta llamar a Load.
func NewDirectory(seed []entity.Pharmacy, repo repository.PharmacyRepository, log zerolog.Logger) *Directory {
	s := make([]entity.Pharmacy, len(seed))
	copy(s, seed)
	ids := make(map[int64]struct{}, len(s))
	for _, p := range s {
		ids[p.ID] = struct{}{}
	}
	return &Directory{repo: repo, log: log, seed: s, seedIDs: ids}
}

// Load lee la partición dinámica desde el repositorio. Si la lectura falla la partición
// queda vacía y se devuelve un error que envuelve domain.ErrStoreRead; el directorio
// sigue siendo usable.
func (d *Directory) Load(ctx context.Context) error {
	list, readErr := d.repo.LoadAll(ctx)
	if readErr != nil {
		list = nil
	}
	d.mu.Lock()
	d.dynamic = list
	d.mu.Unlock()
	d.log.Info().Int("seed", len(d.seed)).Int("registradas", len(list)).Msg("directorio de farmacias cargado")
	if readErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreRead, readErr)
	}
	return nil
}

// ListAll devuelve la semilla completa y luego las dinámicas cuyo ID no está en la semilla,
// en ese orden. El slice devuelto es una copia.
func (d *Directory) ListAll() []entity.Pharmacy {
	dyn := d.dynamicSnapshot()
	out := make([]entity.Pharmacy, 0, len(d.seed)+len(dyn))
	out = append(out, d.seed...)
	for _, p := range dyn {
		if _, dup := d.seedIDs[p.ID]; dup {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FindByName busca una farmacia por nombre sin distinguir mayúsculas.
func (d *Directory) FindByName(name string) (*entity.Pharmacy, bool) {
	for _, p := range d.ListAll() {
		if inventory.SameName(p.Name, name) {
			return &p, true
		}
	}
	return nil, false
}

// Get busca una farmacia por ID.
func (d *Directory) Get(id int64) (*entity.Pharmacy, bool) {
	for _, p := range d.ListAll() {
		if p.ID == id {
			return &p, true
		}
	}
	return nil, false
}

func (d *Directory) dynamicSnapshot() []entity.Pharmacy {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dynamic
}

func (d *Directory) setDynamic(list []entity.Pharmacy) {
	d.mu.Lock()
	d.dynamic = list
	d.mu.Unlock()
}
