package entity

import "github.com/shopspring/decimal"

// Unidades de precio mostradas en los resultados de búsqueda.
const (
	PriceUnitStrip = "per strip"
	PriceUnitNone  = "-"
)

// SearchResult farmacia enriquecida con distancia, precio y stock para una consulta.
// Efímero: nunca se persiste.
type SearchResult struct {
	Pharmacy
	Distance     float64         `json:"distance"` // km, un decimal
	Price        decimal.Decimal `json:"price"`
	PriceUnit    string          `json:"priceUnit"`
	Stock        StockStatus     `json:"stock"`
	IsBestOption bool            `json:"isBestOption"`
}
