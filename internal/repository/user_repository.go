package repository

import (
	"context"

	"procurement-service/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	// FindByID and FindByEmail return nil, nil when nothing matches.
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// SetStatus reports whether the user exists.
	SetStatus(ctx context.Context, id uint64, status domain.UserStatus) (bool, error)
}
