package pharmacy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/geo"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// IDBaseline los IDs de farmacias registradas siempre son mayores que este valor.
const IDBaseline int64 = 1000

// Registrar crea o reutiliza la identidad de farmacia de un dueño que inicia sesión.
type Registrar struct {
	dir  *Directory
	repo repository.PharmacyRepository
	log  zerolog.Logger
}

// NewRegistrar construye el registrador sobre el directorio y el repositorio del conjunto dinámico.
func NewRegistrar(dir *Directory, repo repository.PharmacyRepository, log zerolog.Logger) *Registrar {
	return &Registrar{dir: dir, repo: repo, log: log}
}

// RegisterOrGet devuelve la farmacia cuyo nombre coincide (sin distinguir mayúsculas) con
// owner.Name; si no existe la crea con ID = max(IDs existentes, 1000) + 1 y persiste la
// colección dinámica completa.
//
// Una farmacia existente se devuelve sin cambios: no se actualizan dirección, teléfono
// ni ubicación. El nombre no se valida aquí; eso le toca al caller. Si la escritura falla, la farmacia nueva queda en memoria y se devuelve
// junto con un error que envuelve domain.ErrStoreWrite.
func (r *Registrar) RegisterOrGet(ctx context.Context, owner entity.OwnerDetails, loc geo.Coordinate) (*entity.Pharmacy, error) {
	r.dir.writeMu.Lock()
	defer r.dir.writeMu.Unlock()

	if existing, ok := r.dir.FindByName(owner.Name); ok {
		return existing, nil
	}

	maxID := IDBaseline
	for _, p := range r.dir.ListAll() {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	created := entity.Pharmacy{
		ID:      maxID + 1,
		Name:    owner.Name,
		Address: owner.Address,
		Phone:   owner.Phone,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
	}

	current := r.dir.dynamicSnapshot()
	next := make([]entity.Pharmacy, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, created)
	r.dir.setDynamic(next)

	r.log.Info().Int64("pharmacy_id", created.ID).Str("name", created.Name).Msg("farmacia registrada")

	if err := r.repo.ReplaceAll(ctx, next); err != nil {
		r.log.Error().Err(err).Int64("pharmacy_id", created.ID).Msg("persistir farmacias registradas")
		return &created, fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return &created, nil
}
