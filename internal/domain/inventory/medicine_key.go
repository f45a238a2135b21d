package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key normaliza el nombre de un medicamento a la clave usada en todo el inventario:
// solo se pasa a minúsculas. No se recortan espacios ni sufijos de dosis.
// El resultado nunca comparte memoria con medicineName.
func Key(medicineName string) string {
	// Un Caser guarda estado; no se comparte entre goroutines.
	// Si ya está en minúsculas, cases devuelve el mismo string.
	return strings.Clone(cases.Lower(language.Und).String(medicineName))
}

// SameName compara dos nombres ignorando mayúsculas/minúsculas con la misma regla que Key.
func SameName(a, b string) bool {
	return Key(a) == Key(b)
}
