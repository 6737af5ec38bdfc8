package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/migrate"
	"github.com/tmms/tailor-master-service/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	logger.Init()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := migrate.Up(store.DB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}
