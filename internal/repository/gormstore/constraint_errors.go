package gormstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation recognises duplicate-key failures from MySQL,
// Postgres and SQLite, translated or not.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || // mysql 1062
		strings.Contains(msg, "duplicate key") || // postgres 23505
		strings.Contains(msg, "unique constraint failed")
}
