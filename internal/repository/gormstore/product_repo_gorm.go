package gormstore

import (
	"context"

	"procurement-service/internal/domain"
	"procurement-service/internal/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domain.ErrDuplicateProduct.Wrap(err)
		}
		return errors.Wrap(err, "create product")
	}
	if p.ID == 0 {
		return errors.New("failed to assign product ID")
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := primary(ctx, r.db).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find product %d", id)
	}
	return &p, nil
}

func (r *productRepo) FindByVendorAndName(ctx context.Context, vendorID uint64, name string) (*domain.Product, error) {
	var p domain.Product
	err := primary(ctx, r.db).
		Where("vendor_id = ? AND name = ?", vendorID, name).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product by vendor and name")
	}
	return &p, nil
}

func (r *productRepo) ListByVendor(ctx context.Context, vendorID uint64) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Order("id").Find(&out).Error; err != nil {
		return nil, errors.Wrapf(err, "list products of vendor %d", vendorID)
	}
	return out, nil
}

func (r *productRepo) ListCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	var out []domain.CatalogEntry
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id, products.name, products.price, products.stock, products.vendor_id, users.name AS vendor_name").
		Joins("JOIN users ON users.id = products.vendor_id").
		Order("products.id").
		Scan(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list catalog")
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":  p.Name,
		"price": p.Price,
		"cost":  p.Cost,
		"stock": p.Stock,
	})
	if res.Error != nil {
		if isUniqueConstraintViolation(res.Error) {
			return false, domain.ErrDuplicateProduct.Wrap(res.Error)
		}
		return false, errors.Wrapf(res.Error, "update product %d", p.ID)
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) Restock(ctx context.Context, id uint64, qty int64, price, cost decimal.Decimal) error {
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(map[string]any{
		"stock": gorm.Expr("stock + ?", qty),
		"price": price,
		"cost":  cost,
	}).Error
	if err != nil {
		return errors.Wrapf(err, "restock product %d", id)
	}
	return nil
}

func (r *productRepo) DecrementStock(ctx context.Context, id uint64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "decrement stock of product %d", id)
	}
	return res.RowsAffected == 1, nil
}

func (r *productRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete product %d", id)
	}
	return res.RowsAffected > 0, nil
}
