package gormstore

import (
	"context"

	"procurement-service/internal/domain"
	"procurement-service/internal/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepo{db: db}
}

// Products are joined with LEFT JOIN: a deleted product must not hide the
// order that referenced it.
func (r *reportRepo) VendorOrders(ctx context.Context, vendorID uint64) ([]domain.VendorOrderRow, error) {
	var out []domain.VendorOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id,
			users.name AS employee_name,
			COALESCE(products.name, '') AS product_name,
			order_items.quantity,
			orders.total_amount,
			orders.status,
			orders.created_at`).
		Joins("JOIN users ON users.id = orders.employee_id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("orders.vendor_id = ?", vendorID).
		Order("orders.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list orders of vendor %d", vendorID)
	}
	return out, nil
}

func (r *reportRepo) EmployeeOrders(ctx context.Context, employeeID uint64) ([]domain.EmployeeOrderRow, error) {
	var out []domain.EmployeeOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.total_amount, orders.status, users.name AS vendor_name, orders.created_at").
		Joins("JOIN users ON users.id = orders.vendor_id").
		Where("orders.employee_id = ?", employeeID).
		Order("orders.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list orders of employee %d", employeeID)
	}
	return out, nil
}

// CountUsers counts every user when role is empty.
func (r *reportRepo) CountUsers(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return n, nil
}

func (r *reportRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return n, nil
}

func (r *reportRepo) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count orders")
	}
	return n, nil
}

func (r *reportRepo) DeliveredRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ?", domain.StatusDelivered).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "sum delivered revenue")
	}
	return total, nil
}

func (r *reportRepo) DeliveredProfit(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("COALESCE(SUM((products.price - products.cost) * order_items.quantity), 0)").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status = ?", domain.StatusDelivered).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "sum delivered profit")
	}
	return total, nil
}
