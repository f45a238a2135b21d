package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo guarda el inventario en un hash: un campo por clave de medicamento.
type InventoryRepo struct {
	rdb goredis.UniversalClient
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(rdb goredis.UniversalClient) *InventoryRepo {
	return &InventoryRepo{rdb: rdb}
}

// LoadAll lee el hash completo.
func (r *InventoryRepo) LoadAll(ctx context.Context) (map[string][]entity.InventoryRecord, error) {
	fields, err := r.rdb.HGetAll(ctx, InventoryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall inventory: %w", err)
	}
	out := make(map[string][]entity.InventoryRecord, len(fields))
	for key, raw := range fields {
		var list []entity.InventoryRecord
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, fmt.Errorf("decode inventory %q: %w", key, err)
		}
		out[key] = list
	}
	return out, nil
}

// SaveMedicines escribe las listas en un MULTI/EXEC: todas o ninguna.
func (r *InventoryRepo) SaveMedicines(ctx context.Context, lists map[string][]entity.InventoryRecord) error {
	if len(lists) == 0 {
		return nil
	}
	set := make(map[string]interface{}, len(lists))
	var del []string
	for key, list := range lists {
		if len(list) == 0 {
			del = append(del, key)
			continue
		}
		raw, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("encode inventory %q: %w", key, err)
		}
		set[key] = raw
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		if len(set) > 0 {
			pipe.HSet(ctx, InventoryKey, set)
		}
		if len(del) > 0 {
			pipe.HDel(ctx, InventoryKey, del...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}
