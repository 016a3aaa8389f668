package models

import "time"

// CartItem is one line of a user's live cart. The composite unique
// index on (user_id, product_id) guarantees at most one row per product
// per user; re-adding increments Quantity instead of inserting.
//
// CartItem deliberately avoids gorm.Model: soft-deleted rows would keep
// occupying the unique index and block re-adding a product.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}
