// Package controllers maps HTTP requests onto the service layer.
// Controllers own no business rules: they bind input, call a service,
// and translate the result or error into a JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// fail translates a service error into the matching HTTP response.
func fail(c *ctx.Context, err error) {
	var ve *services.ValidationError
	var me *services.MailError
	switch {
	case errors.As(err, &ve):
		c.ValidationError(ve.Fields)
	case errors.As(err, &me):
		// mail transport failures carry their message to the client
		logger.WithCtx(c.Context()).Error("mail send failed", "error", me)
		c.Error(http.StatusInternalServerError, me.Error())
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden()
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized("Invalid credentials")
	default:
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}
