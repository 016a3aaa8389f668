package services

import (
	"errors"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService manages the per-user live cart.
type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService(carts *repositories.CartRepository, products *repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// CartView is the response of viewing the cart: every line plus the
// grand total. The total multiplies listed price by quantity; discount
// prices never enter it.
type CartView struct {
	Items       []models.CartItem `json:"items"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

// Add puts quantity units of a product into the user's cart. A repeat
// add of the same product increments the existing line.
func (s *CartService) Add(userID, productID uint, quantity int) error {
	if quantity < 1 {
		return NewValidationError("quantity", "The quantity must be at least 1.")
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !product.IsAvailable {
		return NewValidationError("product_id", "This product is not available.")
	}

	return s.carts.AddOrIncrement(userID, productID, quantity)
}

// View returns the user's cart lines and computed total.
func (s *CartService) View(userID uint) (CartView, error) {
	items, err := s.carts.ForUser(userID)
	if err != nil {
		return CartView{}, err
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return CartView{Items: items, TotalAmount: total}, nil
}

// UpdateQuantity replaces (not adds to) the quantity of one cart line.
// A line owned by another user reads as missing.
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) error {
	if quantity < 1 {
		return NewValidationError("quantity", "The quantity must be at least 1.")
	}
	err := s.carts.SetQuantity(userID, itemID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Remove deletes one cart line.
func (s *CartService) Remove(userID, itemID uint) error {
	err := s.carts.Remove(userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
