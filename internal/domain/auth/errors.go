package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotApproved = errors.New("account is pending admin approval")
	ErrEmailExists        = errors.New("email already registered")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrUnauthenticated    = errors.New("authentication required")
)
