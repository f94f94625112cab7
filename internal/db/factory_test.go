package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	for _, typ := range []string{"sqlite", "SQLite3", ""} {
		store, err := NewStore(StoreConfig{Type: typ, ConnectionString: dbPath})
		require.NoError(t, err)
		_, ok := store.(*SQLiteStore)
		assert.True(t, ok, "Expected a SQLiteStore instance for type %q", typ)
		store.Close()
	}

	t.Chdir(t.TempDir())
	store, err := NewStore(StoreConfig{Type: "sqlite"})
	require.NoError(t, err)
	assert.FileExists(t, DefaultSQLitePath)
	store.Close()
}

func TestNewStore_Errors(t *testing.T) {
	_, err := NewStore(StoreConfig{Type: "postgres"})
	assert.ErrorContains(t, err, "connection string is required")

	_, err = NewStore(StoreConfig{Type: "mongo", ConnectionString: "x"})
	assert.ErrorContains(t, err, "unsupported store type: mongo")
}
