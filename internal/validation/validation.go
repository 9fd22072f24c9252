// Package validation binds and validates request payloads.
//
// Payload types carry go-playground/validator tags and implement
// Validatable; failures are converted into field-level errors the client
// can display.
package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate = validator.New()

	// textPolicy strips every HTML element from user-generated text.
	textPolicy = bluemonday.StrictPolicy()
)

// Struct validates v against its struct tags with the shared validator.
func Struct(v any) error {
	return validate.Struct(v)
}

// SanitizeText removes markup from user-generated text (posts, comments).
// Quotes and ampersands are decoded back; angle brackets stay encoded.
func SanitizeText(text string) string {
	return unescape(textPolicy.Sanitize(text))
}
