package dao

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestDao opens a private in-memory sqlite database per test
func newTestDao(t *testing.T) *Dao {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:         "sqlite",
		Path:         "file:" + name + "?mode=memory&cache=shared",
		AutoMigrate:  true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db, WithLogger(zap.NewNop()))
}

func TestUseDialectorRejectsUnknownType(t *testing.T) {
	_, err := useDialector(DatabaseConfig{Type: "oracle"}, "")
	require.Error(t, err)
}

func TestAutoMigrateFileDatabase(t *testing.T) {
	cfg := DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "storage", "doc-share.db"),
		AutoMigrate:  true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}

	for i := 0; i < 2; i++ {
		db, err := NewDBEngineWithConfig(cfg, zap.NewNop())
		require.NoError(t, err)

		for _, table := range []string{"document", "document_tag", "encryption_key", "report", "audit_log"} {
			assert.True(t, db.Migrator().HasTable(table), table)
		}
		assert.True(t, db.Migrator().HasIndex("document_tag", "idx_document_tag_document_id"))
		assert.True(t, db.Migrator().HasIndex("audit_log", "idx_audit_log_document_id"))

		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	}
}
