package storage_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/infrastructure/storage"
	"github.com/jhoicas/Farmacia-api/pkg/config"
)

func TestOpen_Memoria(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}

	b, err := storage.Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.DriverMemory, b.Driver)
	list, err := b.Pharmacies.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}

	_, err := storage.Open(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
