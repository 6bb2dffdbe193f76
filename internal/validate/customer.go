// Package validate checks customer contact details before a booking is
// submitted. Rules are pure: the same input always yields the same
// field→message map, and nothing here touches the network or storage.
package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field keys used in error maps. The backend uses the same keys in its
// VALIDATION_ERROR responses, so local and remote errors merge cleanly.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldShowtime = "showtime"
	FieldSeats    = "seats"
)

// User-facing messages. MsgNoShowtime and MsgNoSeats belong to the
// booking layer, which owns the selection checks, but live here so all
// booking-flow messages sit in one place.
const (
	msgNameRequired = "full name is required"
	msgEmailInvalid = "invalid email address"
	msgPhoneInvalid = "phone number must be exactly 10 digits"
	MsgNoShowtime   = "select a showtime"
	MsgNoSeats      = "select at least one seat"
)

var (
	// Email must have a non-whitespace local part and at least one dot
	// in the domain, so "a@b.com" passes and "a@b" does not.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
	nonDigitRe = regexp.MustCompile(`[^0-9]`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// CustomerInfo is the contact block of a booking attempt. Phone is
// expected to be pre-normalized with NormalizePhone; the validator
// rejects any remaining non-digit characters instead of stripping them
// itself.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// FieldErrors maps field keys to user-facing messages. It satisfies
// error so a failed validation can travel up the call stack unchanged.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for f, msg := range fe {
		parts = append(parts, f+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Merge copies entries from other into fe, overwriting existing keys.
func (fe FieldErrors) Merge(other map[string]string) {
	for f, msg := range other {
		fe[f] = msg
	}
}

// NormalizePhone strips every non-digit character. The input layer
// applies it before validation so pasted numbers like "012-345 6789"
// are accepted rather than rejected character by character.
func NormalizePhone(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// Field validates a single customer field incrementally, as done on
// change/blur. It returns the message for that field or "" when valid.
// Unknown fields are ignored and return "".
func Field(field, value string) string {
	switch field {
	case FieldName:
		if err := validate.Var(strings.TrimSpace(value), "required"); err != nil {
			return msgNameRequired
		}
	case FieldEmail:
		if err := validate.Var(value, "emailshape"); err != nil {
			return msgEmailInvalid
		}
	case FieldPhone:
		if err := validate.Var(value, "phone10"); err != nil {
			return msgPhoneInvalid
		}
	}
	return ""
}

// Customer validates all contact fields exhaustively and returns every
// violation at once. An empty map means the info is valid.
func Customer(info CustomerInfo) FieldErrors {
	errs := FieldErrors{}
	for field, value := range map[string]string{
		FieldName:  info.Name,
		FieldEmail: info.Email,
		FieldPhone: info.Phone,
	} {
		if msg := Field(field, value); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}
