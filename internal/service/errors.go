package service

import "errors"

// Sentinel errors handlers translate into HTTP statuses.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSKUTaken           = errors.New("sku already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
