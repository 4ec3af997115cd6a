package services

import (
	"context"
	"log/slog"
	"strings"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra"
	"procurement-service/internal/policy"
	"procurement-service/internal/repository"

	"github.com/shopspring/decimal"
)

type CatalogService struct {
	products repository.ProductRepository
	authz    policy.Authorizer
	catalog  *catalogCache
	logger   *slog.Logger
}

func NewCatalogService(products repository.ProductRepository, authz policy.Authorizer, cache infra.Cache, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		authz:    authz,
		catalog:  newCatalogCache(cache, logger),
		logger:   logger,
	}
}

type AddProductInput struct {
	VendorID    uint64          `json:"vendorId" validate:"required"`
	Name        string          `json:"name" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int64           `json:"stock" validate:"gt=0"`
	ForceUpdate bool            `json:"forceUpdate"`
}

// UpsertResult tells the caller what AddOrUpdateProduct did. Exists means a
// product with the same name is already listed by the vendor and nothing was
// written; the caller has to confirm with ForceUpdate.
type UpsertResult struct {
	Product *domain.Product
	Created bool
	Updated bool
	Exists  bool
}

func (s *CatalogService) AddOrUpdateProduct(ctx context.Context, in AddProductInput) (*UpsertResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := requirePositive("price", in.Price); err != nil {
		return nil, err
	}
	if err := requireNonNegative("cost", in.Cost); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionManageProduct, OwnerID: in.VendorID}); err != nil {
		return nil, err
	}

	existing, err := s.products.FindByVendorAndName(ctx, in.VendorID, in.Name)
	if err != nil {
		return nil, storeError(err)
	}

	if existing == nil {
		p := &domain.Product{
			VendorID: in.VendorID,
			Name:     in.Name,
			Price:    in.Price,
			Cost:     in.Cost,
			Stock:    in.Stock,
		}
		if err := s.products.Create(ctx, p); err != nil {
			return nil, storeError(err)
		}
		s.catalog.invalidate(ctx, in.VendorID)
		return &UpsertResult{Product: p, Created: true}, nil
	}

	if !in.ForceUpdate {
		return &UpsertResult{Product: existing, Exists: true}, nil
	}

	// Stock is added to what is left; price and cost replace the old values.
	if err := s.products.Restock(ctx, existing.ID, in.Stock, in.Price, in.Cost); err != nil {
		return nil, storeError(err)
	}
	s.catalog.invalidate(ctx, in.VendorID)

	updated, err := s.products.FindByID(ctx, existing.ID)
	if err != nil {
		return nil, storeError(err)
	}
	if updated == nil {
		return nil, domain.ErrProductNotFound
	}

	s.logger.InfoContext(ctx, "product restocked",
		slog.Uint64("productId", updated.ID),
		slog.Int64("added", in.Stock),
		slog.Int64("stock", updated.Stock),
	)
	return &UpsertResult{Product: updated, Updated: true}, nil
}

type UpdateProductInput struct {
	ID    uint64          `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required,max=255"`
	Price decimal.Decimal `json:"price"`
	Cost  decimal.Decimal `json:"cost"`
	Stock int64           `json:"stock" validate:"gte=0"`
}

// UpdateProduct overwrites every editable field.
func (s *CatalogService) UpdateProduct(ctx context.Context, in UpdateProductInput) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := requireNonNegative("price", in.Price); err != nil {
		return nil, err
	}
	if err := requireNonNegative("cost", in.Cost); err != nil {
		return nil, err
	}

	existing, err := s.products.FindByID(ctx, in.ID)
	if err != nil {
		return nil, storeError(err)
	}
	if existing == nil {
		return nil, domain.ErrProductNotFound
	}
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionManageProduct, OwnerID: existing.VendorID}); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Price = in.Price
	existing.Cost = in.Cost
	existing.Stock = in.Stock

	ok, err := s.products.Update(ctx, existing)
	if err != nil {
		return nil, storeError(err)
	}
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	s.catalog.invalidate(ctx, existing.VendorID)
	return existing, nil
}

// DeleteProduct removes the product. Order items that reference it are kept.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return domain.ErrValidation
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if existing == nil {
		return domain.ErrProductNotFound
	}
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionManageProduct, OwnerID: existing.VendorID}); err != nil {
		return err
	}

	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if !ok {
		return domain.ErrProductNotFound
	}

	s.catalog.invalidate(ctx, existing.VendorID)
	return nil
}

func (s *CatalogService) ListVendorProducts(ctx context.Context, vendorID uint64) ([]domain.Product, error) {
	key := vendorProductsKey(vendorID)

	var out []domain.Product
	if s.catalog.get(ctx, key, &out) {
		return out, nil
	}

	out, err := s.products.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, storeError(err)
	}
	if out == nil {
		out = []domain.Product{}
	}

	s.catalog.set(ctx, key, out)
	return out, nil
}

func (s *CatalogService) ListAllProducts(ctx context.Context) ([]domain.CatalogEntry, error) {
	var out []domain.CatalogEntry
	if s.catalog.get(ctx, allProductsKey, &out) {
		return out, nil
	}

	out, err := s.products.ListCatalog(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if out == nil {
		out = []domain.CatalogEntry{}
	}

	s.catalog.set(ctx, allProductsKey, out)
	return out, nil
}
