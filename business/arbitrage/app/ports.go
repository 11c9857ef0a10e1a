// Package app contains application services and port definitions for the arbitrage context.
package app

import (
	"context"
	"time"

	"github.com/solwatch/arbbot/business/arbitrage/domain"
	pricingDomain "github.com/solwatch/arbbot/business/pricing/domain"
)

// CycleOutcome classifies how a scan cycle ended.
type CycleOutcome string

const (
	OutcomeOpportunity      CycleOutcome = "opportunity"
	OutcomeBelowThreshold   CycleOutcome = "below_threshold"
	OutcomeInsufficientData CycleOutcome = "insufficient_data"
	OutcomeDataUnavailable  CycleOutcome = "data_unavailable"
	OutcomeSkippedBusy      CycleOutcome = "skipped_busy"
	OutcomeSkippedMargin    CycleOutcome = "skipped_margin_gate"
)

// CycleSummary is the structured status every cycle produces, found
// opportunity or not.
type CycleSummary struct {
	Cycle        int64
	Timestamp    time.Time
	Outcome      CycleOutcome
	Observations []pricingDomain.PriceObservation
	Opportunity  *domain.Opportunity
	Market       *domain.MarketAnalysis
	Err          error
	Stats        domain.StatsSnapshot
}

// Reporter receives cycle results for display.
type Reporter interface {
	// Start initializes the reporter.
	Start(ctx context.Context) error

	// ReportCycle delivers the end-of-cycle summary.
	ReportCycle(summary CycleSummary)

	// Stop gracefully shuts down the reporter.
	Stop() error
}

// SnapshotWriter persists one record per cycle for offline analysis.
// Write failures are logged by the caller, never fatal.
type SnapshotWriter interface {
	Write(summary CycleSummary) error
}
