package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umdev/infoeste/internal/config"
	"github.com/umdev/infoeste/internal/store/cached"
)

func TestOpen_MemoryWithCache(t *testing.T) {
	cfg := config.Default()
	r, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "memory", r.Driver)
	assert.Nil(t, r.Pool)
	assert.Equal(t, "memory", r.Cache.Kind())
	assert.IsType(t, &cached.Stores{}, r.Stores)
	assert.NoError(t, r.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "sqlite"
	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
}
