package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerForm struct {
	Username             string `json:"username" validate:"required,alpha_dash,min=3,max=150"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type productForm struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Price    float64 `json:"price" validate:"required,gte=0"`
	Rating   float64 `json:"rating" validate:"nullable,gte=0,lte=5"`
	Size     string  `json:"size" validate:"nullable,in=XS,S,M,L,XL"`
	Quantity int     `json:"quantity" validate:"required,integer,gte=1"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(registerForm{
		Username:             "ravi_kumar",
		Email:                "ravi@example.com",
		Password:             "secret-pass",
		PasswordConfirmation: "secret-pass",
	})
	assert.Empty(t, errs)
}

func TestStructRequired(t *testing.T) {
	errs := Struct(registerForm{})
	assert.Equal(t, "The username field is required.", errs["username"])
	assert.Equal(t, "The email field is required.", errs["email"])
	assert.Equal(t, "The password field is required.", errs["password"])
}

func TestStructEmail(t *testing.T) {
	errs := Struct(registerForm{
		Username:             "ravi",
		Email:                "not-an-email",
		Password:             "secret-pass",
		PasswordConfirmation: "secret-pass",
	})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestStructConfirmed(t *testing.T) {
	errs := Struct(registerForm{
		Username:             "ravi",
		Email:                "ravi@example.com",
		Password:             "secret-pass",
		PasswordConfirmation: "different",
	})
	assert.Equal(t, "The password confirmation does not match.", errs["password"])
}

func TestStructMinLength(t *testing.T) {
	errs := Struct(registerForm{
		Username:             "ab",
		Email:                "ravi@example.com",
		Password:             "secret-pass",
		PasswordConfirmation: "secret-pass",
	})
	assert.Equal(t, "The username must be at least 3 characters.", errs["username"])
}

func TestStructAlphaDash(t *testing.T) {
	errs := Struct(registerForm{
		Username:             "ravi kumar",
		Email:                "ravi@example.com",
		Password:             "secret-pass",
		PasswordConfirmation: "secret-pass",
	})
	assert.Contains(t, errs["username"], "letters, numbers, dashes")
}

func TestStructNullableSkips(t *testing.T) {
	errs := Struct(productForm{Name: "Kurta", Price: 499.99, Quantity: 2})
	assert.Empty(t, errs)
}

func TestStructInWithMultiValueParam(t *testing.T) {
	errs := Struct(productForm{Name: "Kurta", Price: 499.99, Quantity: 1, Size: "XXL"})
	assert.Equal(t, "The selected size is invalid.", errs["size"])

	errs = Struct(productForm{Name: "Kurta", Price: 499.99, Quantity: 1, Size: "M"})
	assert.Empty(t, errs)
}

func TestStructNumericBounds(t *testing.T) {
	errs := Struct(productForm{Name: "Kurta", Price: 499.99, Quantity: 1, Rating: 5.5})
	assert.Equal(t, "The rating must be less than or equal to 5.", errs["rating"])
}

func TestStructPointerInput(t *testing.T) {
	errs := Struct(&registerForm{
		Username:             "ravi",
		Email:                "ravi@example.com",
		Password:             "secret-pass",
		PasswordConfirmation: "secret-pass",
	})
	assert.Empty(t, errs)
}

func TestSplitRules(t *testing.T) {
	assert.Equal(t,
		[]string{"required", "in=XS,S,M", "max=2"},
		splitRules("required,in=XS,S,M,max=2"))
	assert.Equal(t,
		[]string{"nullable", "gte=0", "lte=5"},
		splitRules("nullable,gte=0,lte=5"))
}
