// Package seed carga el conjunto fijo de farmacias verificadas.
// Por defecto usa pharmacies.yaml embebido en el binario; SEED_FILE permite reemplazarlo.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// MaxSeedID límite superior de los IDs del conjunto semilla.
const MaxSeedID int64 = 1000

//go:embed pharmacies.yaml
var defaultPharmacies []byte

type seedFile struct {
	Pharmacies []entity.Pharmacy `yaml:"pharmacies"`
}

// Pharmacies devuelve el conjunto semilla. path vacío = archivo embebido.
func Pharmacies(path string) ([]entity.Pharmacy, error) {
	raw := defaultPharmacies
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("seed: leer %s: %w", path, err)
		}
		raw = b
	}
	return Parse(raw)
}

// Parse decodifica y valida un archivo de semilla: IDs únicos, positivos y <= MaxSeedID,
// nombre obligatorio.
func Parse(raw []byte) ([]entity.Pharmacy, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: decodificar YAML: %w", err)
	}
	seen := make(map[int64]bool, len(f.Pharmacies))
	for _, p := range f.Pharmacies {
		if p.ID <= 0 || p.ID > MaxSeedID {
			return nil, fmt.Errorf("seed: ID %d fuera de rango (1..%d)", p.ID, MaxSeedID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("seed: ID %d repetido", p.ID)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("seed: farmacia %d sin nombre", p.ID)
		}
		seen[p.ID] = true
	}
	return f.Pharmacies, nil
}
