package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

type mapFinder map[int64]entity.Pharmacy

func (m mapFinder) Get(id int64) (*entity.Pharmacy, bool) {
	p, ok := m[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

type captureGenerator struct {
	pharmacy *entity.Pharmacy
	stock    []entity.MedicineStock
}

func (g *captureGenerator) GenerateInventoryReport(_ context.Context, p *entity.Pharmacy, stock []entity.MedicineStock) ([]byte, error) {
	g.pharmacy, g.stock = p, stock
	return []byte("%PDF"), nil
}

func TestGenerateReport_PasaInventarioOrdenado(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, 4, []entity.PriceListItem{
		item("Zincovit", 90, ""),
		item("Azee 500", 120, entity.LowStock),
	}))
	require.NoError(t, store.Upsert(ctx, 5, []entity.PriceListItem{item("Dolo 650", 30, "")}))

	gen := &captureGenerator{}
	uc := appinventory.NewReportUseCase(mapFinder{4: {ID: 4, Name: "Guardian"}}, store, gen)

	out, err := uc.GenerateReport(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	assert.Equal(t, "Guardian", gen.pharmacy.Name)
	require.Len(t, gen.stock, 2)
	assert.Equal(t, "azee 500", gen.stock[0].MedicineKey)
	assert.Equal(t, "zincovit", gen.stock[1].MedicineKey)
}

func TestGenerateReport_FarmaciaInexistente(t *testing.T) {
	store, _ := newStore(t)
	uc := appinventory.NewReportUseCase(mapFinder{}, store, &captureGenerator{})

	_, err := uc.GenerateReport(context.Background(), 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
