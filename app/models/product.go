package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allowed values for Product.Size and Product.Color.
var (
	Sizes  = []string{"XS", "S", "M", "L", "XL"}
	Colors = []string{"Red", "Blue", "Green", "Yellow", "Black", "White"}
)

// ValidSize reports whether s is one of the allowed size values.
func ValidSize(s string) bool { return contains(Sizes, s) }

// ValidColor reports whether c is one of the allowed palette colors.
func ValidColor(c string) bool { return contains(Colors, c) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Product represents a catalogue item. Prices are stored as exact
// decimals; DiscountPrice is informational only and never enters cart
// or order totals.
type Product struct {
	gorm.Model
	Name          string           `gorm:"size:255;not null;index" json:"name"`
	Description   string           `gorm:"type:text" json:"description"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_price"`
	Rating        float64          `gorm:"not null;default:0" json:"rating"`
	Stock         int              `gorm:"not null;default:0" json:"stock"`
	CategoryID    uint             `gorm:"not null;index" json:"category_id"`
	Category      *Category        `json:"category,omitempty"`
	Size          string           `gorm:"size:4" json:"size"`
	Color         string           `gorm:"size:32" json:"color"`
	Image         string           `gorm:"size:512" json:"image"`
	IsAvailable   bool             `gorm:"not null;default:true" json:"is_available"`
}
