// Package databasetest opens throwaway SQLite stores with the service schema
// applied.
package databasetest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"procurement-service/internal/infra/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open returns a migrated in-memory database private to t. The pool is
// limited to one connection, so transactions run one after another.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return open(t, memoryDSN(), 1)
}

// OpenConcurrent returns a migrated file-backed database in WAL mode with
// several pooled connections. Transactions on it really overlap: a writer
// waits on the busy timeout while another transaction holds the write lock.
func OpenConcurrent(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	dsn := path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	return open(t, dsn, 8)
}

// OpenWithReplica returns a migrated primary with an empty migrated replica
// registered through dbresolver. Nothing is replicated, so a read served by
// the replica never sees rows written to the primary.
func OpenWithReplica(t testing.TB) *gorm.DB {
	t.Helper()
	db := Open(t)

	replicaDSN := memoryDSN()
	// Keeps the shared in-memory replica alive for the whole test.
	open(t, replicaDSN, 1)

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.Open(replicaDSN)},
	}))
	if err != nil {
		t.Fatalf("register replica: %v", err)
	}
	return db
}

func memoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
}

func open(t testing.TB, dsn string, maxConns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := database.Migrate(context.Background(), db, quiet, database.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
