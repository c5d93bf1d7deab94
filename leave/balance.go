package leave

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// Balance is the leave position for one year.
type Balance struct {
	Entitled  decimal.Decimal
	Taken     decimal.Decimal
	Remaining decimal.Decimal
}

// NewBalance subtracts taken days from the entitlement. Negative taken days
// count as zero and the remainder never goes below zero.
func NewBalance(entitled, taken decimal.Decimal) Balance {
	taken = generic.NonNegative(taken)
	return Balance{
		Entitled:  entitled,
		Taken:     taken,
		Remaining: generic.NonNegative(entitled.Sub(taken)),
	}
}

// IsExhausted returns true when no days remain.
func (b Balance) IsExhausted() bool { return b.Remaining.IsZero() }
