// Package ui provides the Bubble Tea TUI for the arbitrage bot.
package ui

import (
	"time"

	"github.com/solwatch/arbbot/business/arbitrage/domain"
	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
)

// Message types for TUI updates

// CycleMsg is sent at the end of every scan cycle.
type CycleMsg struct {
	Cycle        int64
	Outcome      string
	Observations []pricingDomain.PriceObservation
	Pair         string
}

// OpportunityMsg is sent when an actionable opportunity is detected.
type OpportunityMsg struct {
	Opportunity *domain.Opportunity
}

// StatsMsg carries the updated cycle counters.
type StatsMsg struct {
	Stats domain.StatsSnapshot
}

// MarketMsg carries the reference-feed market context.
type MarketMsg struct {
	Market domain.MarketAnalysis
}

// ConnectionStatusMsg is sent when an upstream connection changes state.
type ConnectionStatusMsg struct {
	Name      string
	Connected bool
	Latency   time.Duration
}

// ErrorMsg is sent when a cycle fails.
type ErrorMsg struct {
	Error error
}

// LogMsg is sent to display a log message in the UI.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}
