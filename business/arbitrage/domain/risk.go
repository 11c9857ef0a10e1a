package domain

import "github.com/shopspring/decimal"

// RiskLevel is the discrete risk tier of an opportunity.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very high"
	RiskUnknown  RiskLevel = "unknown"
)

var (
	tierVeryHigh = decimal.NewFromInt(70)
	tierHigh     = decimal.NewFromInt(50)
	tierMedium   = decimal.NewFromInt(30)
)

// TierFor maps a composite score in [0,100] to a risk tier.
func TierFor(score decimal.Decimal) RiskLevel {
	switch {
	case score.GreaterThan(tierVeryHigh):
		return RiskVeryHigh
	case score.GreaterThan(tierHigh):
		return RiskHigh
	case score.GreaterThan(tierMedium):
		return RiskMedium
	default:
		return RiskLow
	}
}

// RiskDetails holds the three independent sub-scores, each in [0,100].
type RiskDetails struct {
	LiquidityRisk  decimal.Decimal
	VolatilityRisk decimal.Decimal
	ExecutionRisk  decimal.Decimal
}

// RiskAssessment is the scored risk verdict for one opportunity.
type RiskAssessment struct {
	Score          decimal.Decimal // 0..100
	Level          RiskLevel
	Details        RiskDetails
	Recommendation string
	// AdvisoryUsed marks that the score came from the advisory engine
	// rather than the local composite.
	AdvisoryUsed bool
}

// FallbackAssessment is returned when risk computation fails; the
// pipeline is never blocked on a risk-analysis failure.
func FallbackAssessment() RiskAssessment {
	return RiskAssessment{
		Score: decimal.NewFromInt(50),
		Level: RiskUnknown,
	}
}
