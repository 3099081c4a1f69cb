package auth

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrMalformedToken is returned when a bearer token does not have the "<prefix>.<secret>" form.
	ErrMalformedToken = errors.New("malformed api token")

	// ErrInvalidToken is returned when no token matches or the secret does not verify.
	ErrInvalidToken = errors.New("invalid api token")

	// ErrTokenExpired is returned when the token is past its expiry time.
	ErrTokenExpired = errors.New("api token expired")
)
