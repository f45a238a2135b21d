package geo

import "math"

// EarthRadiusKm radio medio de la Tierra usado por la fórmula haversine.
const EarthRadiusKm = 6371.0

// Coordinate punto geográfico en grados decimales.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance devuelve la distancia de gran círculo entre a y b en kilómetros (haversine).
// No valida rangos: coordenadas inválidas producen un número válido pero sin sentido.
func Distance(a, b Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// RoundKm redondea una distancia a un decimal (0.05 -> 0.1).
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
