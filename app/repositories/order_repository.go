package repositories

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrEmptyCart is returned by Place when the user has nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Place converts the user's live cart into an order inside one
// transaction: read cart, compute the total, create the order with
// snapshot line items, clear the cart. Either all of it happens or
// none of it does, so a crash can never leave the cart both charged
// and populated. The total uses the listed price; discount prices are
// not applied. Each order gets a uuid reference number at creation.
func (r *OrderRepository) Place(userID uint, shippingAddress string) (models.Order, error) {
	var order models.Order

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).
			Preload("Product").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		lines := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			if item.Product == nil {
				// stale line: the product vanished out from under
				// the cart. Skip it; the clear below removes it.
				continue
			}
			lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)
			lines = append(lines, models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				UnitPrice:   item.Product.Price,
				Quantity:    item.Quantity,
			})
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		order = models.Order{
			Number:          uuid.NewString(),
			UserID:          userID,
			TotalAmount:     total,
			ShippingAddress: shippingAddress,
			Status:          models.StatusPending,
			Items:           lines,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).
			Delete(&models.CartItem{}).Error
	})

	return order, err
}

// ForUser returns the user's orders, newest first, with line items.
func (r *OrderRepository) ForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("user_id = ?", userID).
		Preload("Items").
		Order("ordered_at desc").
		Find(&orders).Error
	return orders, err
}

// FindByID returns an order with its line items.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	return order, err
}

// UpdateStatus sets the order's status.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
