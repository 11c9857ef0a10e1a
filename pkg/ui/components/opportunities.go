// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// OpportunityRow represents an opportunity in the list.
type OpportunityRow struct {
	Timestamp string
	Pair      string
	BuyVenue  string
	SellVenue string
	DiffPct   decimal.Decimal
	NetPct    decimal.Decimal
	RiskLevel string
	Size      string
}

// OpportunitiesComponent renders the opportunities list.
type OpportunitiesComponent struct {
	rows    []OpportunityRow
	maxRows int
}

// NewOpportunitiesComponent creates a new opportunities component.
func NewOpportunitiesComponent(maxRows int) *OpportunitiesComponent {
	return &OpportunitiesComponent{
		rows:    make([]OpportunityRow, 0),
		maxRows: maxRows,
	}
}

// Add adds a new opportunity to the top of the list.
func (o *OpportunitiesComponent) Add(row OpportunityRow) {
	o.rows = append([]OpportunityRow{row}, o.rows...)
	if len(o.rows) > o.maxRows {
		o.rows = o.rows[:o.maxRows]
	}
}

// Clear clears all opportunities.
func (o *OpportunitiesComponent) Clear() {
	o.rows = make([]OpportunityRow, 0)
}

// View renders the opportunities component.
func (o *OpportunitiesComponent) View() string {
	if len(o.rows) == 0 {
		return "No opportunities detected yet..."
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	netStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	riskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	result := headerStyle.Render(fmt.Sprintf("OPPORTUNITIES (last %d)\n", o.maxRows))
	result += "┌──────────┬──────────────────────┬─────────┬─────────┬───────────┬──────────┐\n"
	result += "│   Time   │        Route         │  Gap    │   Net   │   Risk    │   Size   │\n"
	result += "├──────────┼──────────────────────┼─────────┼─────────┼───────────┼──────────┤\n"

	for _, row := range o.rows {
		route := fmt.Sprintf("%s → %s", row.BuyVenue, row.SellVenue)
		result += fmt.Sprintf("│ %-8s │ %-20s │%8s │%8s │ %-9s │ %-8s │\n",
			row.Timestamp,
			route,
			fmt.Sprintf("%.2f%%", row.DiffPct.InexactFloat64()),
			netStyle.Render(fmt.Sprintf("%+.2f%%", row.NetPct.InexactFloat64())),
			riskStyle.Render(row.RiskLevel),
			row.Size,
		)
	}

	result += "└──────────┴──────────────────────┴─────────┴─────────┴───────────┴──────────┘"

	return result
}
