package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// PharmacyRepository define el puerto de persistencia del conjunto dinámico de farmacias (DIP).
// Las escrituras reemplazan la colección completa; no hay actualizaciones parciales.
type PharmacyRepository interface {
	// LoadAll devuelve las farmacias registradas en el orden en que se guardaron.
	LoadAll(ctx context.Context) ([]entity.Pharmacy, error)
	// ReplaceAll sustituye la colección persistida por pharmacies como una sola unidad.
	ReplaceAll(ctx context.Context, pharmacies []entity.Pharmacy) error
}
