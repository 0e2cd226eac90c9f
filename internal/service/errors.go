package service

import "errors"

var (
	// ErrMissingField means a required input field is blank. The wrapped
	// message names the field.
	ErrMissingField = errors.New("missing required field")

	// ErrMalformedEmail means the guest email does not parse as an address.
	ErrMalformedEmail = errors.New("malformed email")

	// ErrStayTooLong means the stay exceeds the configured night limit.
	ErrStayTooLong = errors.New("stay exceeds maximum length")

	// ErrSessionNotFound means the guest session is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
)
