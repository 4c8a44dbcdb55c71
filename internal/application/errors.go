package application

import "errors"

// Service-level sentinels. Handlers map these onto HTTP statuses and
// stable message keys; the mapping is the only place that decides what a
// caller may learn.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInUse          = errors.New("user is referenced by other records")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrInvalidOTP         = errors.New("otp mismatch")
	ErrOTPExpired         = errors.New("otp expired")
	ErrMailDelivery       = errors.New("email delivery failed")
)
