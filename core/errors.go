package core

import "errors"

// ErrUnauthorized is returned when an inbound request fails signature
// verification. Callers must not interpret the request body after seeing it.
var ErrUnauthorized = errors.New("unauthorized")

// ErrSelfTransaction is returned when someone tries to record a point
// transaction where they are both the subject and the issuer.
var ErrSelfTransaction = errors.New("you can't do transactions for yourself")

// ErrInvalidPhoneNumber is returned when a phone number does not match the
// +12223334455 format. The message doubles as the user-facing hint.
var ErrInvalidPhoneNumber = errors.New(
	"invalid phone number - use the format +12223334455, see https://en.wikipedia.org/wiki/E.164",
)

// IsValidationError reports whether the error was caused by caller input.
// Validation failures are terminal for the message that carried them - they
// are surfaced as a reply and never retried.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrSelfTransaction) || errors.Is(err, ErrInvalidPhoneNumber)
}
