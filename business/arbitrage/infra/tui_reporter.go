// Package infra contains infrastructure adapters for the arbitrage context.
package infra

import (
	"context"

	"github.com/solwatch/arbbot/business/arbitrage/app"
	"github.com/solwatch/arbbot/pkg/ui"
)

// TUIReporter implements Reporter by forwarding cycle results to the
// Bubble Tea program as messages. The program itself is owned by main;
// this adapter only sends.
type TUIReporter struct {
	pair string
}

// NewTUIReporter creates a new TUIReporter.
func NewTUIReporter(pair string) *TUIReporter {
	return &TUIReporter{pair: pair}
}

// Start initializes the TUI reporter.
func (r *TUIReporter) Start(ctx context.Context) error {
	return nil
}

// ReportCycle forwards one cycle summary to the TUI.
func (r *TUIReporter) ReportCycle(summary app.CycleSummary) {
	ui.Send(ui.CycleMsg{
		Cycle:        summary.Cycle,
		Outcome:      string(summary.Outcome),
		Observations: summary.Observations,
		Pair:         r.pair,
	})
	ui.Send(ui.StatsMsg{Stats: summary.Stats})

	if summary.Market != nil {
		ui.Send(ui.MarketMsg{Market: *summary.Market})
	}
	if summary.Opportunity != nil {
		ui.Send(ui.OpportunityMsg{Opportunity: summary.Opportunity})
	}
	if summary.Err != nil {
		ui.Send(ui.ErrorMsg{Error: summary.Err})
	}
}

// Stop gracefully shuts down the TUI reporter.
func (r *TUIReporter) Stop() error {
	return nil
}
