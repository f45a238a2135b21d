package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository construye el adaptador del inventario global.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{pool: pool}
}

// LoadAll lee todo el inventario respetando el orden de cada lista.
func (r *InventoryRepo) LoadAll(ctx context.Context) (map[string][]entity.InventoryRecord, error) {
	query := `
		SELECT medicine_key, pharmacy_id, price, stock
		FROM inventory_records ORDER BY medicine_key, position`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.InventoryRecord)
	for rows.Next() {
		var (
			key   string
			rec   entity.InventoryRecord
			price decimal.Decimal
			stock string
		)
		if err := rows.Scan(&key, &rec.PharmacyID, &price, &stock); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		rec.Price = price
		rec.Stock = entity.StockStatus(stock)
		out[key] = append(out[key], rec)
	}
	return out, rows.Err()
}

// SaveMedicines reescribe las listas indicadas en una sola transacción.
func (r *InventoryRepo) SaveMedicines(ctx context.Context, lists map[string][]entity.InventoryRecord) error {
	if len(lists) == 0 {
		return nil
	}
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for key, list := range lists {
			batch.Queue(`DELETE FROM inventory_records WHERE medicine_key = $1`, key)
			for i, rec := range list {
				batch.Queue(`
					INSERT INTO inventory_records (medicine_key, pharmacy_id, position, price, stock)
					VALUES ($1, $2, $3, $4, $5)`,
					key, rec.PharmacyID, i, rec.Price, string(rec.Stock),
				)
			}
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("save inventory: %w", err)
		}
		return nil
	})
}
