package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccessDenied       = errors.New("ACCESS_DENIED")
	ErrSessionExpired     = errors.New("SESSION_EXPIRED")
	ErrSessionNotFound    = errors.New("SESSION_NOT_FOUND")
	ErrUnauthorized       = errors.New("UNAUTHORIZED")
	ErrInvalidStatus      = errors.New("INVALID_STATUS")
)
