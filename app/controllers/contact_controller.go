package controllers

import (
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

// ContactController serves the public contact form.
type ContactController struct {
	contact *services.ContactService
}

func NewContactController(contact *services.ContactService) *ContactController {
	return &ContactController{contact: contact}
}

// Submit forwards a contact message to the operator. POST /contact/
func (ctl *ContactController) Submit(c *ctx.Context) {
	var in services.ContactInput
	if !c.BindJSON(&in) {
		return
	}
	if err := ctl.contact.Submit(in); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Your message has been sent."})
}
