package queue

import (
	"path/filepath"
	"testing"

	"loyalty-sync/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "q.json")
		q, err := Open[entry](Config{Backend: BackendFile, Path: path}, storage.Config{})
		require.NoError(t, err)
		assert.IsType(t, &FileQueue[entry]{}, q)
	})

	t.Run("Storage", func(t *testing.T) {
		q, err := Open[entry](Config{Backend: BackendStorage, Object: "failed.json"}, storage.Config{Endpoint: "localhost:9000", Bucket: "b"})
		require.NoError(t, err)
		assert.IsType(t, &ObjectQueue[entry]{}, q)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Open[entry](Config{Backend: "redis"}, storage.Config{})
		assert.Error(t, err)
	})
}
