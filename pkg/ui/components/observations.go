// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// ObservationRow is one venue's quoted price in the current scan.
type ObservationRow struct {
	Venue string
	Price decimal.Decimal
}

// ObservationsComponent renders the per-venue price table.
type ObservationsComponent struct {
	rows []ObservationRow
	pair string
}

// NewObservationsComponent creates a new observations component.
func NewObservationsComponent() *ObservationsComponent {
	return &ObservationsComponent{
		rows: make([]ObservationRow, 0),
		pair: "SOL-USDC",
	}
}

// Update replaces the displayed rows with the latest scan.
func (o *ObservationsComponent) Update(rows []ObservationRow) {
	o.rows = rows
}

// SetPair sets the trading pair name.
func (o *ObservationsComponent) SetPair(pair string) {
	o.pair = pair
}

// View renders the observations component.
func (o *ObservationsComponent) View() string {
	if len(o.rows) == 0 {
		return "Waiting for venue quotes..."
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	positiveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	lowest := o.rows[0].Price
	for _, row := range o.rows[1:] {
		if row.Price.LessThan(lowest) {
			lowest = row.Price
		}
	}

	var result string
	result = headerStyle.Render(fmt.Sprintf("VENUE PRICES (%s)", o.pair))
	result += "\n\n"
	result += fmt.Sprintf("  %-10s  %14s  %12s\n", "Venue", "Price", "vs lowest")
	result += dimStyle.Render("  "+strings.Repeat("─", 42)) + "\n"

	for _, row := range o.rows {
		premium := decimal.Zero
		if !lowest.IsZero() {
			premium = row.Price.Sub(lowest).Div(lowest).Mul(decimal.NewFromInt(100))
		}

		premiumStyle := dimStyle
		if premium.GreaterThan(decimal.Zero) {
			premiumStyle = positiveStyle
		} else if premium.IsNegative() {
			premiumStyle = negativeStyle
		}

		result += fmt.Sprintf("  %-10s  %14s  %s\n",
			row.Venue,
			"$"+row.Price.StringFixed(4),
			premiumStyle.Render(fmt.Sprintf("%12s", fmt.Sprintf("%+.3f%%", premium.InexactFloat64()))),
		)
	}

	return result
}
