package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// primary pins a query to the write source. Single-row lookups read through
// it; listings and aggregates keep the default replica routing.
func primary(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Clauses(dbresolver.Write)
}
