// Package bind decodes request bodies into typed structs and runs
// struct-tag validation in one step.
package bind

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vastra/pkg/validate"
)

var ErrInvalidJSON = errors.New("request body is not valid JSON")

// JSON decodes the request body into dst. Unknown fields are rejected.
func JSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

// JSONValidated decodes the body into dst and validates it.
// Returns (validationErrors, decodeError). A nil decodeError with a
// non-empty map means the payload parsed but failed validation.
func JSONValidated(r *http.Request, dst interface{}) (map[string]string, error) {
	if err := JSON(r, dst); err != nil {
		return nil, err
	}
	return validate.Struct(dst), nil
}
