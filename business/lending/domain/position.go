// Package domain contains margin-position health types for the lending
// context.
package domain

import (
	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/asset"
)

// Position is a margin position: native collateral backing a borrow.
type Position struct {
	Collateral asset.Amount
	Borrowed   asset.Amount
}

// NewPosition creates a position from lamport amounts.
func NewPosition(collateralLamports, borrowedLamports uint64) Position {
	return Position{
		Collateral: asset.NewAmountFromUint64(asset.SOL, collateralLamports),
		Borrowed:   asset.NewAmountFromUint64(asset.SOL, borrowedLamports),
	}
}

// HealthFactor is collateral over borrowed. A position with no debt has
// no meaningful factor and reports a very large one.
func (p Position) HealthFactor() decimal.Decimal {
	if p.Borrowed.IsZero() {
		return decimal.NewFromInt(1_000_000)
	}
	return p.Collateral.ToDecimal().Div(p.Borrowed.ToDecimal())
}

// IsLiquidatable reports whether the debt exceeds the collateral.
func (p Position) IsLiquidatable() bool {
	return p.Borrowed.Raw().Cmp(p.Collateral.Raw()) > 0
}
