package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

type stubExtractor struct {
	items    []entity.PriceListItem
	err      error
	gotMime  string
	gotBytes int
}

func (s *stubExtractor) ExtractPriceList(_ context.Context, image []byte, mimeType string) ([]entity.PriceListItem, error) {
	s.gotMime = mimeType
	s.gotBytes = len(image)
	return s.items, s.err
}

func TestScan_AplicaItemsValidos(t *testing.T) {
	store, _ := newStore(t)
	ext := &stubExtractor{items: []entity.PriceListItem{
		item("Paracetamol", 50, ""),
		item("", 10, entity.InStock),                                          // sin nombre
		{MedicineName: "Negativo", Price: decimal.NewFromInt(-1)},             // precio negativo
		{MedicineName: "Raro", Price: decimal.NewFromInt(5), Stock: "Quizás"}, // stock desconocido
		item("Crocin", 25, entity.LowStock),
	}}
	uc := appinventory.NewScanUseCase(ext, store, zerolog.Nop())

	applied, err := uc.Scan(context.Background(), 9, []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)

	assert.Len(t, applied, 2)
	assert.Equal(t, "image/jpeg", ext.gotMime)
	assert.Equal(t, 2, ext.gotBytes)
	require.Len(t, store.Lookup("paracetamol"), 1)
	assert.Equal(t, entity.InStock, store.Lookup("paracetamol")[0].Stock)
	assert.Equal(t, entity.LowStock, store.Lookup("crocin")[0].Stock)
	assert.False(t, store.HasMedicine("negativo"))
	assert.False(t, store.HasMedicine("raro"))
}

func TestScan_ImagenVacia(t *testing.T) {
	store, _ := newStore(t)
	uc := appinventory.NewScanUseCase(&stubExtractor{}, store, zerolog.Nop())

	_, err := uc.Scan(context.Background(), 1, nil, "image/png")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScan_ErrorDelExtractor(t *testing.T) {
	store, _ := newStore(t)
	boom := errors.New("AI: GEMINI_API_KEY no configurado")
	uc := appinventory.NewScanUseCase(&stubExtractor{err: boom}, store, zerolog.Nop())

	_, err := uc.Scan(context.Background(), 1, []byte{1}, "image/png")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
