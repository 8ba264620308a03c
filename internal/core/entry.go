package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

type (
	// Kind tells income entries from expense entries. Its value is the
	// Type column of the saved file.
	Kind string

	// Entry is one recorded money movement. Label is the source for income
	// and the category for expenses.
	Entry struct {
		Amount decimal.Decimal
		Label  string
		Date   string
	}

	// Record is an Entry tagged with the sequence it belongs to.
	Record struct {
		Kind Kind
		Entry
	}
)

var ErrUnknownKind = errors.New("unknown entry kind")

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts "income" or "expense" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ValidDate reports whether s looks like YYYY-MM-DD: exactly ten bytes with
// hyphens at positions 4 and 7. The other characters are not inspected, so
// "2024-13-45" and "abcd-ef-gh" both pass.
func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	r := []rune(s)
	return len(r) > 7 && r[4] == '-' && r[7] == '-'
}
