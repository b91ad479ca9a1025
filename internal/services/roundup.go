package services

import "github.com/shopspring/decimal"

// minActionableDelta guards against floating-point noise producing a
// sub-cent transfer.
var minActionableDelta = decimal.NewFromFloat(0.01)

// ComputeDelta returns the savings delta for an amount rounded up to the
// nearest unit. A zero result means "no autosave for this transaction" and is
// never an error: the unit may be disabled (<= 0), the amount may already sit
// on a unit boundary, or the remainder may be below one cent.
func ComputeDelta(amount, unit decimal.Decimal) decimal.Decimal {
	if unit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	// a sub-cent sliver above a boundary counts as on the boundary
	rem := amount.Mod(unit)
	if rem.LessThan(minActionableDelta) {
		return decimal.Zero
	}

	delta := unit.Sub(rem).Round(2)
	if delta.LessThan(minActionableDelta) {
		return decimal.Zero
	}

	return delta
}
