package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Order is the header row. Vendors may move it through statuses of their own
// choosing; only Delivered orders count towards revenue.
type Order struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID  uint64          `json:"employeeId" gorm:"not null;index"`
	VendorID    uint64          `json:"vendorId" gorm:"not null;index"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Status      OrderStatus     `json:"status" gorm:"size:32;not null;default:'Pending';index"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	Items       []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`

	Employee *User `json:"-" gorm:"foreignKey:EmployeeID"`
	Vendor   *User `json:"-" gorm:"foreignKey:VendorID"`
}

// OrderItem carries the unit price as it was when the order was placed.
type OrderItem struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"orderId" gorm:"not null;index"`
	ProductID uint64          `json:"productId" gorm:"not null;index"`
	Quantity  int64           `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
}

// LineTotal is price * quantity for a single item.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// ItemsTotal sums the line totals of the loaded items.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}
