package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia del inventario global:
// clave de medicamento (minúsculas) -> lista ordenada de registros por farmacia.
type InventoryRepository interface {
	// LoadAll devuelve el mapa completo. El orden de cada lista es el persistido.
	LoadAll(ctx context.Context) (map[string][]entity.InventoryRecord, error)
	// SaveMedicines reemplaza las listas de las claves indicadas en una sola operación atómica.
	// Una lista vacía (o nil) elimina la clave.
	SaveMedicines(ctx context.Context, lists map[string][]entity.InventoryRecord) error
}
