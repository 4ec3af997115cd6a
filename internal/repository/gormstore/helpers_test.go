package gormstore

import (
	"context"
	"testing"

	"procurement-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: email, PasswordHash: "x", Role: role, Status: role.InitialStatus()}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, vendorID uint64, name, price, cost string, stock int64) *domain.Product {
	t.Helper()
	p := &domain.Product{
		VendorID: vendorID,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Cost:     decimal.RequireFromString(cost),
		Stock:    stock,
	}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}
