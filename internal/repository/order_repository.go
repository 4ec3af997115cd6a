package repository

import (
	"context"

	"procurement-service/internal/domain"
)

// OrderRepository stores order headers and their line items.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateItem(ctx context.Context, item *domain.OrderItem) error
	// FindByID returns nil, nil when the order does not exist.
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	// UpdateStatus reports whether a row was changed.
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (bool, error)
}
