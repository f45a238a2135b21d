package ports

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// PriceListExtractor define el puerto de salida para convertir la foto de una lista de
// precios en ítems estructurados. Cualquier adaptador (Gemini, Anthropic, mock) lo implementa.
// El contexto debe llevar un timeout: las llamadas a modelos externos pueden tardar.
type PriceListExtractor interface {
	ExtractPriceList(ctx context.Context, image []byte, mimeType string) ([]entity.PriceListItem, error)
}
