package database

import (
	"context"
	"log/slog"
	"time"

	"procurement-service/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migration is one schema step. Versions are applied in ascending order and
// recorded in schema_migrations so each step runs exactly once.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

type schemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:128;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// Migrations is the schema history of the service. Append only.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users_and_products",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&domain.User{}, &domain.Product{})
		},
	},
	{
		Version: 2,
		Name:    "create_orders_and_order_items",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
		},
	},
}

// Migrate applies every migration in ms that has not been recorded yet.
func Migrate(ctx context.Context, db *gorm.DB, logger *slog.Logger, ms []Migration) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return errors.Wrap(err, "create schema_migrations")
	}

	var applied []schemaMigration
	if err := db.Order("version").Find(&applied).Error; err != nil {
		return errors.Wrap(err, "read schema_migrations")
	}
	done := make(map[int]bool, len(applied))
	for _, m := range applied {
		done[m.Version] = true
	}

	last := 0
	for _, m := range ms {
		if m.Version <= last {
			return errors.Errorf("migration %d (%s) out of order", m.Version, m.Name)
		}
		last = m.Version
		if done[m.Version] {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.Version, Name: m.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return errors.Wrapf(err, "migration %d (%s)", m.Version, m.Name)
		}
		logger.Info("migration applied", slog.Int("version", m.Version), slog.String("name", m.Name))
	}

	return nil
}
