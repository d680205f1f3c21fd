// Package payment wraps the three checkout providers. Each adapter resolves
// its credentials from the admin settings table first and falls back to the
// environment configuration, mirroring the dual configuration sources of the
// admin back-office.
package payment

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured means no credentials were found in either the
	// settings table or the environment.
	ErrNotConfigured = errors.New("payment provider not configured")
	// ErrUpstream wraps provider API failures.
	ErrUpstream = errors.New("payment provider error")
)

// AmountCents converts a decimal money amount into the integer minor units
// card processors expect.
func AmountCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
