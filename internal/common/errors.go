// Package common holds sentinel errors shared across layers.
package common

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOutOfStock         = errors.New("insufficient stock")
	ErrQuantityRange      = errors.New("quantity out of range")
	ErrPriceRange         = errors.New("price out of range")
	ErrSelfDelete         = errors.New("cannot delete own account")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
)
