package wallet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Limits holds the inclusive amount bounds for each wallet operation.
type Limits struct {
	MinDeposit  decimal.Decimal
	MaxDeposit  decimal.Decimal
	MinWithdraw decimal.Decimal
	MaxWithdraw decimal.Decimal
}

// Validate checks a requested amount against the bounds for the given
// operation type. It is pure: no store access, no side effects. A nil amount
// (absent in the request) fails the same way an out-of-range amount does.
func (l Limits) Validate(t TransactionType, amount *decimal.Decimal) error {
	if amount == nil {
		return fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	min, max := l.MinDeposit, l.MaxDeposit
	if t == Debit {
		min, max = l.MinWithdraw, l.MaxWithdraw
	}

	if amount.LessThan(min) || amount.GreaterThan(max) {
		return fmt.Errorf("%w: amount must be between %s and %s", ErrInvalidAmount, min, max)
	}

	return nil
}
