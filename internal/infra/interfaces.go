package infra

import (
	"context"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra/auth"
	"procurement-service/internal/infra/cache"
)

// PasswordHasher verifies credentials without the store ever seeing them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

type TokenService interface {
	Issue(userID uint64, role domain.Role) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// Cache is a JSON key/value cache. Get returns cache.ErrMiss for absent keys.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

var (
	_ PasswordHasher = (*auth.BcryptHasher)(nil)
	_ TokenService   = (*auth.JWTService)(nil)
	_ Cache          = (*cache.RedisCache)(nil)
)
