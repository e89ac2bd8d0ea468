package services

import "errors"

// Sentinel errors the controllers map onto HTTP status codes.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrConsumedNotFound = errors.New("consumed product not found")
)
