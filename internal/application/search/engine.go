package search

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/geo"
)

// Parámetros fijos del ranking.
const (
	MaxResults          = 10
	DistanceToleranceKm = 2.0
)

// PriceTolerance margen de precio con el que una farmacia más cercana sigue siendo preferida.
var PriceTolerance = decimal.NewFromInt(10)

// PharmacyLister fuente de farmacias conocidas (lo implementa *pharmacy.Directory).
type PharmacyLister interface {
	ListAll() []entity.Pharmacy
}

// InventoryReader fuente de registros de inventario (lo implementa *inventory.Store).
type InventoryReader interface {
	Lookup(medicineName string) []entity.InventoryRecord
}

// Observer recibe el resultado de cada búsqueda (métricas). Puede ser nil.
type Observer interface {
	ObserveSearch(results int, bestOption bool, elapsed time.Duration)
}

// Engine responde "dónde encuentro X cerca de L". Solo lee del directorio y del inventario.
type Engine struct {
	pharmacies PharmacyLister
	inventory  InventoryReader
	observer   Observer
	log        zerolog.Logger
}

// NewEngine construye el motor de búsqueda.
func NewEngine(pharmacies PharmacyLister, inv InventoryReader, observer Observer, log zerolog.Logger) *Engine {
	return &Engine{pharmacies: pharmacies, inventory: inv, observer: observer, log: log}
}

type stockInfo struct {
	price decimal.Decimal
	stock entity.StockStatus
}

// FindNearby enriquece cada farmacia con distancia, precio y stock para el medicamento,
// ordena por distancia, conserva solo las que tienen InStock, corta a MaxResults y marca
// la mejor opción.
func (e *Engine) FindNearby(ctx context.Context, loc geo.Coordinate, medicineName string) []entity.SearchResult {
	start := time.Now()

	records := e.inventory.Lookup(medicineName)
	byPharmacy := make(map[int64]stockInfo, len(records))
	for _, r := range records {
		byPharmacy[r.PharmacyID] = stockInfo{price: r.Price, stock: r.Stock}
	}

	all := e.pharmacies.ListAll()
	enriched := make([]entity.SearchResult, 0, len(all))
	for _, p := range all {
		res := entity.SearchResult{
			Pharmacy:  p,
			Distance:  geo.RoundKm(geo.Distance(loc, p.Location())),
			Price:     decimal.Zero,
			PriceUnit: entity.PriceUnitNone,
			Stock:     entity.OutOfStock,
		}
		if info, ok := byPharmacy[p.ID]; ok {
			res.Price = info.price
			res.PriceUnit = entity.PriceUnitStrip
			res.Stock = info.stock
		}
		enriched = append(enriched, res)
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Distance < enriched[j].Distance
	})

	// LowStock y OutOfStock no se muestran.
	results := make([]entity.SearchResult, 0, MaxResults)
	for _, r := range enriched {
		if r.Stock != entity.InStock {
			continue
		}
		results = append(results, r)
		if len(results) == MaxResults {
			break
		}
	}

	best := BestOption(results)
	if best >= 0 {
		results[best].IsBestOption = true
	}

	elapsed := time.Since(start)
	if e.observer != nil {
		e.observer.ObserveSearch(len(results), best >= 0, elapsed)
	}
	e.log.Debug().
		Str("medicine", medicineName).
		Int("records", len(records)).
		Int("results", len(results)).
		Dur("elapsed", elapsed).
		Msg("búsqueda de medicamento")
	return results
}

// BestOption recorre los resultados (ordenados por distancia) de izquierda a derecha y
// devuelve el índice ganador, o -1 si no hay resultados. Un candidato p reemplaza al actual
// si:
//
//	(a) p está más cerca y su precio < precio actual + PriceTolerance, o
//	(b) p es más barato y su distancia < distancia actual + DistanceToleranceKm.
//
// Es una reducción secuencial, no un óptimo global: el resultado depende del orden.
func BestOption(results []entity.SearchResult) int {
	if len(results) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(results); i++ {
		p, b := results[i], results[best]
		closer := p.Distance < b.Distance && p.Price.LessThan(b.Price.Add(PriceTolerance))
		cheaper := p.Price.LessThan(b.Price) && p.Distance < b.Distance+DistanceToleranceKm
		if closer || cheaper {
			best = i
		}
	}
	return best
}
