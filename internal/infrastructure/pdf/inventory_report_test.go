package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		"25.00":      "Rs. 25.00",
		"1250.50":    "Rs. 1,250.50",
		"1000000.00": "Rs. 1,000,000.00",
		"999":        "Rs. 999",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatPrice(in), in)
	}
}

func TestGenerateInventoryReport(t *testing.T) {
	g := NewMarotoReportGenerator()
	p := &entity.Pharmacy{ID: 1001, Name: "Sharma Medicos", Address: "Karol Bagh", Phone: "9810000000", Lat: 28.65, Lon: 77.19}
	stock := []entity.MedicineStock{
		{MedicineKey: "paracetamol 500mg", InventoryRecord: entity.InventoryRecord{PharmacyID: 1001, Price: decimal.NewFromInt(25), Stock: entity.InStock}},
		{MedicineKey: "azithromycin 250mg", InventoryRecord: entity.InventoryRecord{PharmacyID: 1001, Price: decimal.RequireFromString("95.5"), Stock: entity.LowStock}},
	}

	out, err := g.GenerateInventoryReport(context.Background(), p, stock)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInventoryReport_FarmaciaNil(t *testing.T) {
	_, err := NewMarotoReportGenerator().GenerateInventoryReport(context.Background(), nil, nil)
	assert.Error(t, err)
}
