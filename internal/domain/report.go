package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VendorOrderRow struct {
	ID           uint64          `json:"id"`
	EmployeeName string          `json:"employeeName"`
	ProductName  string          `json:"productName"`
	Quantity     int64           `json:"quantity"`
	TotalAmount  decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type EmployeeOrderRow struct {
	ID          uint64          `json:"id"`
	TotalAmount decimal.Decimal `json:"total"`
	Status      OrderStatus     `json:"status"`
	VendorName  string          `json:"vendorName"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type AdminStats struct {
	TotalUsers     int64           `json:"totalUsers"`
	TotalVendors   int64           `json:"totalVendors"`
	TotalEmployees int64           `json:"totalEmployees"`
	TotalProducts  int64           `json:"totalProducts"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalProfit    decimal.Decimal `json:"totalProfit"`
}
