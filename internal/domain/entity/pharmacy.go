package entity

import "github.com/jhoicas/Farmacia-api/internal/domain/geo"

// Pharmacy identidad y ubicación de una farmacia. Inmutable una vez creada; nunca se elimina.
// Las del conjunto semilla tienen IDs fijos; las registradas en ejecución reciben IDs > 1000.
type Pharmacy struct {
	ID      int64   `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Address string  `json:"address" yaml:"address"`
	Phone   string  `json:"phone" yaml:"phone"`
	Lat     float64 `json:"lat" yaml:"lat"`
	Lon     float64 `json:"lon" yaml:"lon"`
}

// Location devuelve la coordenada de la farmacia.
func (p Pharmacy) Location() geo.Coordinate {
	return geo.Coordinate{Lat: p.Lat, Lon: p.Lon}
}

// OwnerDetails datos que entrega el dueño al iniciar sesión por primera vez.
type OwnerDetails struct {
	Name    string
	Phone   string
	Address string
}
