package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.PharmacyRepository = (*PharmacyRepo)(nil)

// PharmacyRepo implementación de PharmacyRepository sobre PostgreSQL.
type PharmacyRepo struct {
	pool *pgxpool.Pool
}

// NewPharmacyRepository construye el adaptador de persistencia para farmacias registradas.
func NewPharmacyRepository(pool *pgxpool.Pool) *PharmacyRepo {
	return &PharmacyRepo{pool: pool}
}

// LoadAll lista las farmacias registradas en orden de registro.
func (r *PharmacyRepo) LoadAll(ctx context.Context) ([]entity.Pharmacy, error) {
	query := `
		SELECT id, name, address, phone, lat, lon
		FROM pharmacies ORDER BY position`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pharmacies: %w", err)
	}
	defer rows.Close()
	var list []entity.Pharmacy
	for rows.Next() {
		var p entity.Pharmacy
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Phone, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("scan pharmacy: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ReplaceAll borra la colección y la vuelve a insertar completa en una transacción.
func (r *PharmacyRepo) ReplaceAll(ctx context.Context, pharmacies []entity.Pharmacy) error {
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM pharmacies`); err != nil {
			return fmt.Errorf("delete pharmacies: %w", err)
		}
		rows := make([][]any, len(pharmacies))
		for i, p := range pharmacies {
			rows[i] = []any{p.ID, i, p.Name, p.Address, p.Phone, p.Lat, p.Lon}
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"pharmacies"},
			[]string{"id", "position", "name", "address", "phone", "lat", "lon"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("insert pharmacies: %w", err)
		}
		return nil
	})
}
