package gormstore

import (
	"context"
	"errors"
	"testing"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra/database/databasetest"
	"procurement-service/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := databasetest.Open(t)
	txm := NewTransactionManager(db)
	ctx := context.Background()

	vendor := seedUser(t, db, "Acme", "sales@acme.io", domain.RoleVendor)
	employee := seedUser(t, db, "Eve", "eve@corp.io", domain.RoleEmployee)
	p := seedProduct(t, db, vendor.ID, "Laptop", "10", "6", 5)

	boom := errors.New("item insert failed")
	err := txm.WithTransaction(ctx, func(repos repository.Repositories) error {
		ok, err := repos.Products().DecrementStock(ctx, p.ID, 2)
		require.NoError(t, err)
		require.True(t, ok)

		order := &domain.Order{EmployeeID: employee.ID, VendorID: vendor.ID, TotalAmount: decimal.NewFromInt(20), Status: domain.StatusPending}
		require.NoError(t, repos.Orders().Create(ctx, order))
		require.NoError(t, repos.Orders().CreateItem(ctx, &domain.OrderItem{OrderID: order.ID, ProductID: p.ID, Quantity: 2, Price: decimal.NewFromInt(10)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := NewProductRepository(db).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
	assert.Zero(t, countRows(t, db, &domain.Order{}))
	assert.Zero(t, countRows(t, db, &domain.OrderItem{}))
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	db := databasetest.Open(t)
	txm := NewTransactionManager(db)
	ctx := context.Background()

	vendor := seedUser(t, db, "Acme", "sales@acme.io", domain.RoleVendor)
	p := seedProduct(t, db, vendor.ID, "Laptop", "10", "6", 5)

	assert.Panics(t, func() {
		_ = txm.WithTransaction(ctx, func(repos repository.Repositories) error {
			_, _ = repos.Products().DecrementStock(ctx, p.ID, 5)
			panic("handler bug")
		})
	})

	got, err := NewProductRepository(db).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
}

func TestTransactionManager_Commits(t *testing.T) {
	db := databasetest.Open(t)
	txm := NewTransactionManager(db)
	ctx := context.Background()

	vendor := seedUser(t, db, "Acme", "sales@acme.io", domain.RoleVendor)
	p := seedProduct(t, db, vendor.ID, "Laptop", "10", "6", 5)

	err := txm.WithTransaction(ctx, func(repos repository.Repositories) error {
		_, err := repos.Products().DecrementStock(ctx, p.ID, 3)
		return err
	})
	require.NoError(t, err)

	got, err := NewProductRepository(db).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Stock)
}
