package repositories

import (
	"github.com/shashiranjanraj/vastra/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// AddOrIncrement inserts a cart row for (user, product) or, when one
// already exists, bumps its quantity by the given amount. The upsert
// runs as a single statement so two concurrent adds cannot lose an
// increment the way a read-then-write would.
func (r *CartRepository) AddOrIncrement(userID, productID uint, quantity int) error {
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(&item).Error
}

// ForUser returns the user's cart with product details, oldest first.
func (r *CartRepository) ForUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("added_at asc").
		Find(&items).Error
	return items, err
}

// FindOwned returns the cart item only when it belongs to userID.
// A foreign user's item is indistinguishable from a missing one.
func (r *CartRepository) FindOwned(userID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	return item, err
}

// SetQuantity replaces the quantity of an owned cart item.
func (r *CartRepository) SetQuantity(userID, itemID uint, quantity int) error {
	result := r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Remove deletes an owned cart item.
func (r *CartRepository) Remove(userID, itemID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
