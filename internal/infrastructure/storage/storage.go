// Package storage abre el backend de persistencia elegido por STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/redis"
	"github.com/jhoicas/Farmacia-api/pkg/config"
)

// Backend repositorios listos para inyectar y la función que libera conexiones.
type Backend struct {
	Driver     string
	Pharmacies repository.PharmacyRepository
	Inventory  repository.InventoryRepository
	Close      func()
}

// Open conecta con el backend configurado. Con postgres aplica el esquema embebido.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return &Backend{
			Driver:     config.DriverMemory,
			Pharmacies: memory.NewPharmacyRepository(),
			Inventory:  memory.NewInventoryRepository(),
			Close:      func() {},
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Driver:     config.DriverPostgres,
			Pharmacies: postgres.NewPharmacyRepository(pool),
			Inventory:  postgres.NewInventoryRepository(pool),
			Close:      pool.Close,
		}, nil

	case config.DriverRedis:
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		return &Backend{
			Driver:     config.DriverRedis,
			Pharmacies: redis.NewPharmacyRepository(rdb),
			Inventory:  redis.NewInventoryRepository(rdb),
			Close: func() {
				if err := rdb.Close(); err != nil {
					log.Error().Err(err).Msg("cerrar cliente Redis")
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
}
