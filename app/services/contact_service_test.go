package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/services"
)

func TestContactSubmit(t *testing.T) {
	var got services.ContactInput
	svc := services.NewContactService(func(in services.ContactInput) error {
		got = in
		return nil
	})

	in := services.ContactInput{Name: "Meera", Email: "meera@example.com", Subject: "Hi", Message: "Hello"}
	require.NoError(t, svc.Submit(in))
	assert.Equal(t, in, got)
}

func TestContactSubmitTransportError(t *testing.T) {
	cause := errors.New("smtp 451: greylisted, try again later")
	svc := services.NewContactService(func(services.ContactInput) error { return cause })

	err := svc.Submit(services.ContactInput{
		Name: "Meera", Email: "meera@example.com", Subject: "Hi", Message: "Hello",
	})
	require.Error(t, err)

	// The transport failure is typed so the controller can surface
	// its message, and the original cause stays reachable.
	var me *services.MailError
	require.ErrorAs(t, err, &me)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "greylisted")
}
