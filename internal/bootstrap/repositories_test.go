package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoffeePOS_Go/internal/config"
	"github.com/osse101/CoffeePOS_Go/internal/database/memory"
	"github.com/osse101/CoffeePOS_Go/internal/database/sqlite"
	"github.com/osse101/CoffeePOS_Go/internal/event"
)

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(t.Context(), testConfig())
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig()
		cfg.StorageDriver = config.StorageDriverSQLite
		cfg.SQLitePath = filepath.Join(t.TempDir(), "data", "pos.db")

		store, err := OpenStore(t.Context(), cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		assert.IsType(t, &sqlite.Store{}, store)
		assert.NoError(t, store.Ping(t.Context()))
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := testConfig()
		cfg.StorageDriver = "csv"

		_, err := OpenStore(t.Context(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgUnknownDriver)
	})
}

func TestInitializeEventSystem_WithoutBroker(t *testing.T) {
	broker, err := InitializeEventSystem(t.Context(), testConfig(), event.NewMemoryBus())
	require.NoError(t, err)
	assert.Nil(t, broker)
}
