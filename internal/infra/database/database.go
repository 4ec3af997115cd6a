// Package database opens the relational store and keeps its schema current.
package database

import (
	"fmt"
	"log/slog"
	"net"

	"procurement-service/config"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the configured primary, registers read replicas when
// present and applies pool limits. It does not migrate.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	dbCfg := cfg.Database

	primary, err := dialector(dbCfg, net.JoinHostPort(dbCfg.Host, fmt.Sprint(dbCfg.Port)))
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(primary, &gorm.Config{
		Logger:         newGormSlogLogger(logger, cfg.Env.Debug),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dbCfg.Driver)
	}

	if len(dbCfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(dbCfg.Replicas))
		for _, addr := range dbCfg.Replicas {
			d, err := dialector(dbCfg, addr)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, d)
		}

		resolver := dbresolver.Register(dbresolver.Config{
			Replicas:          replicas,
			Policy:            dbresolver.RandomPolicy{},
			TraceResolverMode: cfg.Env.Debug,
		}).
			SetMaxOpenConns(dbCfg.MaxOpenConns).
			SetMaxIdleConns(dbCfg.MaxIdleConns).
			SetConnMaxLifetime(dbCfg.ConnMaxLifetime).
			SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)

		if err := db.Use(resolver); err != nil {
			return nil, errors.Wrap(err, "register read replicas")
		}
		logger.Info("read replicas registered", slog.Int("count", len(replicas)))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)

	return db, nil
}

func dialector(dbCfg config.DatabaseConfig, addr string) (gorm.Dialector, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "database address %q", addr)
	}

	switch dbCfg.Driver {
	case "mysql":
		// clientFoundRows makes UPDATE report matched rather than changed rows,
		// so an unchanged overwrite still counts as "found".
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
			dbCfg.User, dbCfg.Password, host, port, dbCfg.Name)
		return mysql.Open(dsn), nil
	case "postgres":
		sslMode := dbCfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			host, port, dbCfg.User, dbCfg.Password, dbCfg.Name, sslMode)
		return postgres.Open(dsn), nil
	default:
		return nil, errors.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
