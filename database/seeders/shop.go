package seeders

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/auth"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
}

// SeedAdminUser creates the initial admin account if none exists.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("change-me-on-first-login")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Username: "admin",
		Email:    "admin@vastra.local",
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error
}

// SeedCategories creates a small category tree: two roots with
// a couple of children each.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tree := map[string][]string{
		"Clothing":    {"T-Shirts", "Jeans", "Jackets"},
		"Accessories": {"Belts", "Scarves"},
	}
	for root, children := range tree {
		parent := models.Category{Name: root}
		if err := db.Create(&parent).Error; err != nil {
			return err
		}
		for _, name := range children {
			child := models.Category{Name: name, ParentID: &parent.ID}
			if err := db.Create(&child).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedProducts fills each leaf category with a few sample products.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var tshirts models.Category
	if err := db.Where("name = ?", "T-Shirts").First(&tshirts).Error; err != nil {
		return err
	}
	var jeans models.Category
	if err := db.Where("name = ?", "Jeans").First(&jeans).Error; err != nil {
		return err
	}

	discount := decimal.RequireFromString("19.99")
	samples := []models.Product{
		{
			Name:        "Classic Crew Tee",
			Description: "Heavyweight cotton crew neck t-shirt.",
			Price:       decimal.RequireFromString("24.99"),
			Rating:      4.5,
			Stock:       120,
			CategoryID:  tshirts.ID,
			Size:        "M",
			Color:       "Black",
			IsAvailable: true,
		},
		{
			Name:          "Graphic Print Tee",
			Description:   "Screen-printed tee with a faded wash.",
			Price:         decimal.RequireFromString("29.99"),
			DiscountPrice: &discount,
			Rating:        4.1,
			Stock:         80,
			CategoryID:    tshirts.ID,
			Size:          "L",
			Color:         "White",
			IsAvailable:   true,
		},
		{
			Name:        "Slim Fit Jeans",
			Description: "Stretch denim with a tapered leg.",
			Price:       decimal.RequireFromString("59.99"),
			Rating:      4.7,
			Stock:       45,
			CategoryID:  jeans.ID,
			Size:        "M",
			Color:       "Blue",
			IsAvailable: true,
		},
		{
			Name:        "Relaxed Straight Jeans",
			Description: "Rigid denim, classic straight cut.",
			Price:       decimal.RequireFromString("64.99"),
			Rating:      4.2,
			Stock:       0,
			CategoryID:  jeans.ID,
			Size:        "XL",
			Color:       "Blue",
			IsAvailable: false,
		},
	}
	for i := range samples {
		if err := db.Create(&samples[i]).Error; err != nil {
			return fmt.Errorf("seed product %q: %w", samples[i].Name, err)
		}
	}
	return nil
}
