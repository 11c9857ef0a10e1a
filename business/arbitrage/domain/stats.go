package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// BotStats holds the process-wide cycle counters. Counters reset to zero
// on every process start; nothing here survives a restart.
type BotStats struct {
	mu sync.Mutex

	started time.Time

	cyclesRun     int64
	cyclesSkipped int64
	opportunities int64
	lastNetProfit decimal.Decimal
	lastRiskLevel RiskLevel
	totalProfit   decimal.Decimal // cumulative estimated, in percent-cycles
}

// StatsSnapshot is an immutable copy of the counters for reporting.
type StatsSnapshot struct {
	Started       time.Time
	CyclesRun     int64
	CyclesSkipped int64
	Opportunities int64
	LastNetProfit decimal.Decimal
	LastRiskLevel RiskLevel
	TotalProfit   decimal.Decimal
}

// NewBotStats creates zeroed counters for this process run.
func NewBotStats() *BotStats {
	return &BotStats{started: time.Now(), lastRiskLevel: RiskUnknown}
}

// RecordCycle notes one completed scan cycle and its outcome.
func (s *BotStats) RecordCycle(netProfit decimal.Decimal, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cyclesRun++
	s.lastNetProfit = netProfit
	if found {
		s.opportunities++
		s.totalProfit = s.totalProfit.Add(netProfit)
	}
}

// RecordSkip notes a cycle that never ran (reentrancy guard, margin gate).
func (s *BotStats) RecordSkip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cyclesSkipped++
}

// RecordRiskLevel notes the last scored risk tier.
func (s *BotStats) RecordRiskLevel(level RiskLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRiskLevel = level
}

// Snapshot returns a copy of the counters.
func (s *BotStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StatsSnapshot{
		Started:       s.started,
		CyclesRun:     s.cyclesRun,
		CyclesSkipped: s.cyclesSkipped,
		Opportunities: s.opportunities,
		LastNetProfit: s.lastNetProfit,
		LastRiskLevel: s.lastRiskLevel,
		TotalProfit:   s.totalProfit,
	}
}
