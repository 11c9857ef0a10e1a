package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/asset"
)

// PathStep is one realized hop of a multi-hop cycle.
type PathStep struct {
	From      string // token symbol
	To        string
	InAmount  asset.Amount
	OutAmount asset.Amount
	Rate      decimal.Decimal // OutAmount per InAmount, decimal-adjusted
}

// PathCandidate is one token cycle under evaluation. A candidate whose
// hop evaluation failed keeps Evaluated false and carries the error; it
// must never appear in the profit ranking.
type PathCandidate struct {
	Path      []string // token symbols, first == last
	Steps     []PathStep
	ProfitPct decimal.Decimal
	Evaluated bool
	Err       error
}

// String renders the cycle as "SOL -> USDC -> SOL".
func (c PathCandidate) String() string {
	return strings.Join(c.Path, " -> ")
}

// ValidCycle reports whether a candidate path is a well-formed cycle
// anchored at start: closed, within hop bounds, at least a round trip.
func ValidCycle(path []string, start string, maxHops int) bool {
	if len(path) < 3 || len(path) > maxHops+1 {
		return false
	}
	return path[0] == start && path[len(path)-1] == start
}
