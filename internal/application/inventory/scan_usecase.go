package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/ports"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// ScanTimeout tiempo máximo para que el servicio de IA lea la foto.
const ScanTimeout = 20 * time.Second

// ScanUseCase carga el inventario de una farmacia a partir de la foto de su lista de precios.
type ScanUseCase struct {
	extractor ports.PriceListExtractor
	store     *Store
	log       zerolog.Logger
}

// NewScanUseCase construye el caso de uso inyectando el puerto PriceListExtractor.
func NewScanUseCase(extractor ports.PriceListExtractor, store *Store, log zerolog.Logger) *ScanUseCase {
	return &ScanUseCase{extractor: extractor, store: store, log: log}
}

// Scan extrae los ítems de la imagen, descarta los que no tienen nombre o tienen precio
// negativo o stock desconocido, y los aplica con Store.Upsert. Devuelve los ítems aplicados.
// Si la persistencia falla, los ítems se devuelven junto con el error.
func (uc *ScanUseCase) Scan(ctx context.Context, pharmacyID int64, image []byte, mimeType string) ([]entity.PriceListItem, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidInput
	}

	aiCtx, cancel := context.WithTimeout(ctx, ScanTimeout)
	defer cancel()

	extracted, err := uc.extractor.ExtractPriceList(aiCtx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("lectura de lista de precios: %w", err)
	}

	items := make([]entity.PriceListItem, 0, len(extracted))
	for _, it := range extracted {
		if strings.TrimSpace(it.MedicineName) == "" || it.Price.IsNegative() {
			continue
		}
		if it.Stock != "" && !it.Stock.Valid() {
			continue
		}
		items = append(items, it)
	}
	uc.log.Info().
		Int64("pharmacy_id", pharmacyID).
		Int("extraidos", len(extracted)).
		Int("aplicados", len(items)).
		Msg("lista de precios escaneada")

	if err := uc.store.Upsert(ctx, pharmacyID, items); err != nil {
		return items, err
	}
	return items, nil
}
