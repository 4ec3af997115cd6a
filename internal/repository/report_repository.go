package repository

import (
	"context"

	"procurement-service/internal/domain"

	"github.com/shopspring/decimal"
)

// ReportRepository is read-only.
type ReportRepository interface {
	VendorOrders(ctx context.Context, vendorID uint64) ([]domain.VendorOrderRow, error)
	EmployeeOrders(ctx context.Context, employeeID uint64) ([]domain.EmployeeOrderRow, error)
	CountUsers(ctx context.Context, role domain.Role) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	// DeliveredRevenue sums order totals of Delivered orders.
	DeliveredRevenue(ctx context.Context) (decimal.Decimal, error)
	// DeliveredProfit sums (current price - current cost) * quantity over
	// the line items of Delivered orders.
	DeliveredProfit(ctx context.Context) (decimal.Decimal, error)
}
