package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Routing keys on the events exchange.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusUpdated = "order.status_updated"
	EventUserRegistered     = "user.registered"
	EventUserApproved       = "user.approved"
)

type OrderPlacedEvent struct {
	OrderID     uint64          `json:"orderId"`
	EmployeeID  uint64          `json:"employeeId"`
	VendorID    uint64          `json:"vendorId"`
	ProductID   uint64          `json:"productId"`
	Quantity    int64           `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type OrderStatusUpdatedEvent struct {
	OrderID  uint64      `json:"orderId"`
	VendorID uint64      `json:"vendorId"`
	Status   OrderStatus `json:"status"`
}

type UserEvent struct {
	UserID uint64     `json:"userId"`
	Email  string     `json:"email"`
	Role   Role       `json:"role"`
	Status UserStatus `json:"status"`
}
