// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Stats holds cycle statistics for display.
type Stats struct {
	Started       time.Time
	CyclesRun     int64
	CyclesSkipped int64
	Opportunities int64
	LastNetPct    float64
	LastRiskLevel string
	TotalPct      float64
}

// StatsComponent renders statistics.
type StatsComponent struct {
	stats Stats
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent() *StatsComponent {
	return &StatsComponent{}
}

// Update updates the statistics.
func (s *StatsComponent) Update(stats Stats) {
	s.stats = stats
}

// View renders the stats component.
func (s *StatsComponent) View() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	skipStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)

	hitRate := float64(0)
	if s.stats.CyclesRun > 0 {
		hitRate = float64(s.stats.Opportunities) / float64(s.stats.CyclesRun) * 100
	}

	skippedDisplay := valueStyle.Render(fmt.Sprintf("%d", s.stats.CyclesSkipped))
	if s.stats.CyclesSkipped > 0 {
		skippedDisplay = skipStyle.Render(fmt.Sprintf("%d", s.stats.CyclesSkipped))
	}

	uptime := time.Duration(0)
	if !s.stats.Started.IsZero() {
		uptime = time.Since(s.stats.Started).Round(time.Second)
	}

	return style.Render("STATS") + "\n" +
		fmt.Sprintf("Cycles: %s  │  Skipped: %s  │  Opportunities: %s (%.1f%%)\n",
			valueStyle.Render(fmt.Sprintf("%d", s.stats.CyclesRun)),
			skippedDisplay,
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Opportunities)),
			hitRate,
		) +
		fmt.Sprintf("Last net: %s  │  Last risk: %s  │  Uptime: %s",
			valueStyle.Render(fmt.Sprintf("%+.2f%%", s.stats.LastNetPct)),
			valueStyle.Render(s.stats.LastRiskLevel),
			valueStyle.Render(uptime.String()),
		)
}
