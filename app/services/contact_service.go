package services

import (
	"fmt"
	"html"

	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/mail"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
)

// ContactInput is the contact-form payload.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

// SendFunc delivers a contact message. Tests inject a fake; production
// uses SendContactMail.
type SendFunc func(in ContactInput) error

// ContactService forwards contact-form submissions to the operator
// mailbox. Delivery is synchronous; a transport error fails the
// request and is never retried.
type ContactService struct {
	send SendFunc
}

func NewContactService(send SendFunc) *ContactService {
	if send == nil {
		send = SendContactMail
	}
	return &ContactService{send: send}
}

// Submit dispatches the message to the configured recipient.
func (s *ContactService) Submit(in ContactInput) error {
	if err := s.send(in); err != nil {
		metrics.ContactMessages.WithLabelValues("failed").Inc()
		return &MailError{Err: err}
	}
	metrics.ContactMessages.WithLabelValues("sent").Inc()
	return nil
}

// SendContactMail builds and sends the operator email over SMTP with
// the visitor's address as Reply-To.
func SendContactMail(in ContactInput) error {
	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(in.Name),
		html.EscapeString(in.Email),
		html.EscapeString(in.Message),
	)
	return mail.To(config.ContactRecipient()).
		ReplyTo(in.Email).
		Subject("[Contact] " + in.Subject).
		Body(body).
		Send()
}
