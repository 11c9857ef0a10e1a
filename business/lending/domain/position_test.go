package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPosition_HealthFactor(t *testing.T) {
	tests := []struct {
		name       string
		collateral uint64
		borrowed   uint64
		want       string
	}{
		{name: "healthy_2x", collateral: 2_000_000_000, borrowed: 1_000_000_000, want: "2"},
		{name: "at_boundary", collateral: 1_000_000_000, borrowed: 1_000_000_000, want: "1"},
		{name: "underwater", collateral: 500_000_000, borrowed: 1_000_000_000, want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPosition(tt.collateral, tt.borrowed)
			if got := p.HealthFactor(); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("HealthFactor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPosition_IsLiquidatable(t *testing.T) {
	tests := []struct {
		name       string
		collateral uint64
		borrowed   uint64
		want       bool
	}{
		{name: "healthy", collateral: 2_000_000_000, borrowed: 1_000_000_000, want: false},
		// Equal collateral and debt sits exactly on the boundary and is safe
		{name: "boundary_not_liquidatable", collateral: 1_000_000_000, borrowed: 1_000_000_000, want: false},
		{name: "one_lamport_over", collateral: 1_000_000_000, borrowed: 1_000_000_001, want: true},
		{name: "no_debt", collateral: 1_000_000_000, borrowed: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPosition(tt.collateral, tt.borrowed)
			if got := p.IsLiquidatable(); got != tt.want {
				t.Errorf("IsLiquidatable = %v, want %v", got, tt.want)
			}
		})
	}
}
