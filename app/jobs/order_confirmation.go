// Package jobs defines background jobs processed by the queue workers.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/mail"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// JobOrderConfirmation is the registry name for OrderConfirmationJob.
const JobOrderConfirmation = "*jobs.OrderConfirmationJob"

// repos used by job handlers; set once at boot via Init.
var (
	orderRepo *repositories.OrderRepository
	userRepo  *repositories.UserRepository
)

// Init wires repositories into job handlers and registers every job
// type with the queue so serialized payloads can be rebuilt.
func Init(orders *repositories.OrderRepository, users *repositories.UserRepository) {
	orderRepo = orders
	userRepo = users
	queue.Register(JobOrderConfirmation, func() queue.Job { return &OrderConfirmationJob{} })
}

// OrderConfirmationJob emails the buyer a summary of their new order.
// Runs off the request path; the queue retries transient SMTP failures.
type OrderConfirmationJob struct {
	OrderID uint `json:"order_id"`
}

func (j *OrderConfirmationJob) Handle() error {
	order, err := orderRepo.FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("order confirmation: load order %d: %w", j.OrderID, err)
	}
	user, err := userRepo.FindByID(order.UserID)
	if err != nil {
		return fmt.Errorf("order confirmation: load user %d: %w", order.UserID, err)
	}

	body := fmt.Sprintf(
		"<h2>Thanks for your order, %s!</h2>"+
			"<p>Order #%d was placed successfully.</p>"+
			"<p>Total: %s</p>"+
			"<p>We will let you know when it ships.</p>",
		user.Username, order.ID, order.TotalAmount.StringFixed(2),
	)

	return mail.To(user.Email).
		Subject(fmt.Sprintf("Order #%d confirmed", order.ID)).
		Body(body).
		Send()
}
