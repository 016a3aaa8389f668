package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Admin-settable; ValidStatus gates the input.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

var Statuses = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

// ValidStatus reports whether s is one of the four order statuses.
func ValidStatus(s string) bool { return contains(Statuses, s) }

// Order is an immutable snapshot of a cart at checkout. TotalAmount is
// computed once at placement and never recomputed, so later price
// changes do not affect order history. Number is the public uuid
// reference for the order, safe to expose outside the API.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Number          string          `gorm:"size:36;not null;uniqueIndex" json:"number"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	Status          string          `gorm:"size:20;not null;default:Pending" json:"status"`
	OrderedAt       time.Time       `gorm:"autoCreateTime;index" json:"ordered_at"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a historical line item. Name and unit price are copied
// from the product at placement time so the record survives product
// edits and deletions.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
}
