package gormstore

import (
	"context"
	"fmt"

	"procurement-service/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type transactionManager struct {
	db *gorm.DB
}

// txRepositories builds repositories on top of one open transaction.
type txRepositories struct {
	tx *gorm.DB
}

func (f *txRepositories) Products() repository.ProductRepository {
	return NewProductRepository(f.tx)
}

func (f *txRepositories) Orders() repository.OrderRepository {
	return NewOrderRepository(f.tx)
}

func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &transactionManager{db: db}
}

func (tm *transactionManager) WithTransaction(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&txRepositories{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}
