package gormstore

import (
	"context"
	"testing"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra/database/databasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := databasetest.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := seedUser(t, db, "Eve", "eve@corp.io", domain.RoleEmployee)

	err := repo.Create(ctx, &domain.User{Name: "Other", Email: "eve@corp.io", PasswordHash: "y", Role: domain.RoleVendor, Status: domain.UserPending})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	stored, err := repo.FindByEmail(ctx, "eve@corp.io")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Eve", stored.Name)
	assert.Equal(t, domain.RoleEmployee, stored.Role)
}

func TestUserRepository_StatusFlow(t *testing.T) {
	db := databasetest.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	vendor := seedUser(t, db, "Acme", "sales@acme.io", domain.RoleVendor)
	seedUser(t, db, "Eve", "eve@corp.io", domain.RoleEmployee)

	pending, err := repo.ListByStatus(ctx, domain.UserPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, vendor.ID, pending[0].ID)

	ok, err := repo.SetStatus(ctx, vendor.ID, domain.UserApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	// Approving twice still finds the row.
	ok, err = repo.SetStatus(ctx, vendor.ID, domain.UserApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetStatus(ctx, 999, domain.UserApproved)
	require.NoError(t, err)
	assert.False(t, ok)

	pending, err = repo.ListByStatus(ctx, domain.UserPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	missing, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
