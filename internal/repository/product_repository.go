package repository

import (
	"context"

	"procurement-service/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	// FindByID and FindByVendorAndName return nil, nil when nothing matches.
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	FindByVendorAndName(ctx context.Context, vendorID uint64, name string) (*domain.Product, error)
	ListByVendor(ctx context.Context, vendorID uint64) ([]domain.Product, error)
	ListCatalog(ctx context.Context) ([]domain.CatalogEntry, error)
	// Update overwrites name, price, cost and stock. Reports whether the row exists.
	Update(ctx context.Context, p *domain.Product) (bool, error)
	// Restock adds qty to the current stock and overwrites price and cost in one statement.
	Restock(ctx context.Context, id uint64, qty int64, price, cost decimal.Decimal) error
	// DecrementStock subtracts qty only if at least qty units are left and
	// reports whether it did.
	DecrementStock(ctx context.Context, id uint64, qty int64) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}
