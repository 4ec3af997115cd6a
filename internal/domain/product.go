package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	VendorID  uint64          `json:"vendorId" gorm:"not null;uniqueIndex:idx_products_vendor_name,priority:1"`
	Name      string          `json:"name" gorm:"size:255;not null;uniqueIndex:idx_products_vendor_name,priority:2"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Cost      decimal.Decimal `json:"cost" gorm:"type:decimal(12,2);not null;default:0"`
	Stock     int64           `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`

	Vendor *User `json:"-" gorm:"foreignKey:VendorID"`
}

// CatalogEntry is the employee-facing view of a product.
type CatalogEntry struct {
	ID         uint64          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
	VendorID   uint64          `json:"vendorId"`
	VendorName string          `json:"vendorName"`
}
