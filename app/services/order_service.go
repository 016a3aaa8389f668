package services

import (
	"errors"
	"strconv"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/event"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"gorm.io/gorm"
)

// Event names fired by the order pipeline.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusUpdated = "order.status_updated"
)

// OrderEvent is the payload for both order events.
type OrderEvent struct {
	OrderID uint   `json:"order_id"`
	UserID  uint   `json:"user_id"`
	Status  string `json:"status"`
}

// OrderService handles placement, tracking, and status updates.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Place converts the user's cart to an order and fires order.placed.
func (s *OrderService) Place(userID uint, shippingAddress string) (models.Order, error) {
	if shippingAddress == "" {
		return models.Order{}, NewValidationError("shipping_address", "The shipping_address field is required.")
	}

	order, err := s.orders.Place(userID, shippingAddress)
	if err != nil {
		if errors.Is(err, repositories.ErrEmptyCart) {
			return models.Order{}, NewValidationError("cart", "Your cart is empty.")
		}
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	event.FireAsync(EventOrderPlaced, OrderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
	})
	return order, nil
}

// Track returns the user's orders, newest first.
func (s *OrderService) Track(userID uint) ([]models.Order, error) {
	orders, err := s.orders.ForUser(userID)
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, err
}

// UpdateStatus sets an order's status to any of the four values; a
// non-forward transition is legal but logged, since it usually means
// an operator correcting a mistake.
func (s *OrderService) UpdateStatus(orderID uint, status string) (models.Order, error) {
	if !models.ValidStatus(status) {
		return models.Order{}, NewValidationError("status", "The selected status is invalid.")
	}

	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	if statusRank(status) < statusRank(order.Status) {
		logger.Warn("order: backward status transition",
			"order_id", orderID, "from", order.Status, "to", status)
	}

	if err := s.orders.UpdateStatus(orderID, status); err != nil {
		return models.Order{}, err
	}
	order.Status = status

	metrics.OrderStatusUpdates.WithLabelValues(status).Inc()
	event.FireAsync(EventOrderStatusUpdated, OrderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  status,
	})
	return order, nil
}

func statusRank(status string) int {
	for i, s := range models.Statuses {
		if s == status {
			return i
		}
	}
	return -1
}

// UserKey renders a user id the way the websocket hub keys clients.
func UserKey(userID uint) string { return strconv.FormatUint(uint64(userID), 10) }
