// seed_inventory carga una lista de precios CSV en el inventario de una farmacia
// usando el mismo backend que la API (STORE_DRIVER).
//
// Uso: go run ./cmd/seed_inventory -pharmacy 3 [-latin1] lista.csv
//
// Columnas: medicamento,precio[,stock]. La primera fila se ignora si es encabezado.
// -latin1 decodifica archivos exportados desde Excel en ISO-8859-1.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/pharmacy"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/seed"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/storage"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func main() {
	pharmacyID := flag.Int64("pharmacy", 0, "ID de la farmacia destino")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()
	if *pharmacyID <= 0 || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_inventory -pharmacy <id> [-latin1] lista.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed_inventory"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	items, err := parsePriceList(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer lista de precios")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	seeds, err := seed.Pharmacies(cfg.Store.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar farmacias semilla")
	}
	dir := pharmacy.NewDirectory(seeds, backend.Pharmacies, log.Component("directory"))
	if err := dir.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("leer farmacias registradas")
	}
	p, ok := dir.Get(*pharmacyID)
	if !ok {
		log.Fatal().Int64("pharmacy_id", *pharmacyID).Msg("farmacia no registrada")
	}

	store := appinventory.NewStore(backend.Inventory, log.Component("inventory"))
	// Upsert persiste solo las claves tocadas: un inventario ilegible no se pisa.
	if err := store.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("leer inventario; se cargan solo los ítems del archivo")
	}
	if err := store.Upsert(ctx, p.ID, items); err != nil {
		log.Fatal().Err(err).Msg("guardar inventario")
	}

	log.Info().
		Int64("pharmacy_id", p.ID).
		Str("pharmacy", p.Name).
		Int("items", len(items)).
		Str("driver", backend.Driver).
		Msg("inventario cargado")
}

// parsePriceList lee filas medicamento,precio[,stock]; omite encabezado y filas vacías.
func parsePriceList(r io.Reader) ([]entity.PriceListItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var items []entity.PriceListItem
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 2 columnas", line)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			if line == 1 {
				continue // encabezado
			}
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[1])
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("línea %d: precio negativo", line)
		}
		var stock entity.StockStatus
		if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
			stock, err = entity.ParseStockStatus(strings.TrimSpace(rec[2]))
			if err != nil {
				return nil, fmt.Errorf("línea %d: %w", line, err)
			}
		}
		items = append(items, entity.PriceListItem{MedicineName: rec[0], Price: price, Stock: stock})
	}
	return items, nil
}
