package inventory_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
)

func TestKey_SoloMinusculas(t *testing.T) {
	assert.Equal(t, "paracetamol", inventory.Key("Paracetamol"))
	assert.Equal(t, "paracetamol", inventory.Key("PARACETAMOL"))
	assert.Equal(t, "acetaminofén", inventory.Key("ACETAMINOFÉN"))
}

func TestKey_SinOtraNormalizacion(t *testing.T) {
	assert.Equal(t, " paracetamol ", inventory.Key(" Paracetamol "), "no se recortan espacios")
	assert.Equal(t, "dolo 650", inventory.Key("Dolo 650"), "no se quitan sufijos de dosis")
	assert.NotEqual(t, inventory.Key("Dolo"), inventory.Key("Dolo 650"))
}

func TestKey_NoCompartirMemoria(t *testing.T) {
	// Simula un buffer reutilizado: el nombre ya está en minúsculas.
	buf := []byte("crocin")
	name := unsafe.String(&buf[0], len(buf))

	key := inventory.Key(name)
	copy(buf, "zzzzzz")

	assert.Equal(t, "crocin", key)
}

func TestSameName(t *testing.T) {
	assert.True(t, inventory.SameName("Farmacia Central", "farmacia CENTRAL"))
	assert.False(t, inventory.SameName("Farmacia Central", "Farmacia Central 2"))
}
