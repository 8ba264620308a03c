// Package core holds the budget ledger and its value types.
//
// This file contains the amount parsing and formatting helpers shared by the
// shell and the persistence code.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts user input to a non-negative decimal amount.
//
// Leading and trailing spaces are ignored. Zero is accepted; negative values
// and anything decimal.NewFromString rejects return ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount(" 0 ")    -> 0, nil
//	ParseAmount("-1")     -> 0, ErrInvalidAmount
//	ParseAmount("twelve") -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatMoney renders an amount with exactly two decimals, as shown to the
// user. Persisted files use decimal.String instead.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
