// Package infra contains infrastructure adapters for the arbitrage context.
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/solwatch/arbbot/business/arbitrage/app"
)

// ConsoleReporter implements Reporter for CLI output.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a new ConsoleReporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{
		out: os.Stdout,
	}
}

// Start initializes the console reporter.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "Cross-Venue Opportunity Scanner Started")
	fmt.Fprintln(r.out, "=======================================")
	return nil
}

// ReportCycle outputs one scan cycle's result to the console. Cycles
// without an opportunity print a single status line; detected
// opportunities get the full breakdown.
func (r *ConsoleReporter) ReportCycle(summary app.CycleSummary) {
	ts := summary.Timestamp.Format("15:04:05")

	if summary.Opportunity == nil {
		line := fmt.Sprintf("[%s] cycle %d: %s (%d venues)",
			ts, summary.Cycle, summary.Outcome, len(summary.Observations))
		if summary.Err != nil {
			line += fmt.Sprintf(" - %v", summary.Err)
		}
		fmt.Fprintln(r.out, line)
		return
	}

	opp := summary.Opportunity

	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "================================================================================")
	fmt.Fprintln(r.out, "ARBITRAGE OPPORTUNITY DETECTED")
	fmt.Fprintln(r.out, "================================================================================")
	fmt.Fprintf(r.out, "Cycle:          #%d\n", summary.Cycle)
	fmt.Fprintf(r.out, "Timestamp:      %s\n", opp.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(r.out, "Pair:           %s\n", opp.Pair.String())
	fmt.Fprintf(r.out, "Route:          buy %s, sell %s\n", opp.BuyVenue, opp.SellVenue)
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintln(r.out, "PRICES")
	fmt.Fprintf(r.out, "  Buy  (%s):  $%s\n", opp.BuyVenue, opp.BuyPrice.StringFixed(4))
	fmt.Fprintf(r.out, "  Sell (%s):  $%s\n", opp.SellVenue, opp.SellPrice.StringFixed(4))
	fmt.Fprintf(r.out, "  Gap:            %s%%\n", opp.PriceDiffPct.StringFixed(4))
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintln(r.out, "COSTS")
	fmt.Fprintf(r.out, "  DEX fees:       %s%%\n", opp.Costs.DexFees.StringFixed(4))
	fmt.Fprintf(r.out, "  Network:        %s%%\n", opp.Costs.GasCost.StringFixed(4))
	fmt.Fprintf(r.out, "  Slippage:       %s%%\n", opp.Costs.Slippage.StringFixed(4))
	fmt.Fprintf(r.out, "  Total:          %s%%\n", opp.Costs.Total.StringFixed(4))
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintln(r.out, "VERDICT")
	fmt.Fprintf(r.out, "  Net profit:     %s%%\n", opp.NetProfitPct.StringFixed(4))
	if opp.Risk != nil {
		fmt.Fprintf(r.out, "  Risk:           %s (%s)\n", opp.Risk.Level, opp.Risk.Score.StringFixed(1))
		if opp.Risk.Recommendation != "" {
			fmt.Fprintf(r.out, "  Advice:         %s\n", opp.Risk.Recommendation)
		}
	}
	if opp.RecommendedSize != nil {
		fmt.Fprintf(r.out, "  Size:           %s %s\n",
			opp.RecommendedSize.String(), opp.RecommendedSize.Asset().Symbol())
	}
	if len(opp.AlternatePaths) > 0 {
		fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
		fmt.Fprintln(r.out, "ALTERNATE PATHS")
		for _, candidate := range opp.AlternatePaths {
			if !candidate.Evaluated {
				fmt.Fprintf(r.out, "  %-28s (not evaluated)\n", candidate.String())
				continue
			}
			fmt.Fprintf(r.out, "  %-28s %s%%\n", candidate.String(), candidate.ProfitPct.StringFixed(4))
		}
	}
	fmt.Fprintln(r.out, "================================================================================")
}

// Stop gracefully shuts down the console reporter.
func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "Scanner Stopped")
	return nil
}
