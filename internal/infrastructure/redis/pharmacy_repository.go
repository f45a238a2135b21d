package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.PharmacyRepository = (*PharmacyRepo)(nil)

// PharmacyRepo guarda la colección dinámica como un único documento JSON.
type PharmacyRepo struct {
	rdb goredis.UniversalClient
}

// NewPharmacyRepository construye el adaptador.
func NewPharmacyRepository(rdb goredis.UniversalClient) *PharmacyRepo {
	return &PharmacyRepo{rdb: rdb}
}

// LoadAll lee el documento; si no existe devuelve una colección vacía.
func (r *PharmacyRepo) LoadAll(ctx context.Context) ([]entity.Pharmacy, error) {
	raw, err := r.rdb.Get(ctx, PharmaciesKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pharmacies: %w", err)
	}
	var list []entity.Pharmacy
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode pharmacies: %w", err)
	}
	return list, nil
}

// ReplaceAll sobrescribe el documento completo.
func (r *PharmacyRepo) ReplaceAll(ctx context.Context, pharmacies []entity.Pharmacy) error {
	raw, err := json.Marshal(pharmacies)
	if err != nil {
		return fmt.Errorf("encode pharmacies: %w", err)
	}
	if err := r.rdb.Set(ctx, PharmaciesKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("set pharmacies: %w", err)
	}
	return nil
}
