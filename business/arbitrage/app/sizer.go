package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	advisoryApp "github.com/solwatch/arbbot/business/advisory/app"
	advisoryDomain "github.com/solwatch/arbbot/business/advisory/domain"
	"github.com/solwatch/arbbot/business/arbitrage/domain"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/logger"
)

var (
	tierAggressive = decimal.NewFromInt(3)
	tierModerate   = decimal.RequireFromString("1.5")

	advisoryGate = decimal.RequireFromString("0.5") // min price gap to bother the advisor

	fracDefault    = decimal.RequireFromString("0.10")
	fracAggressive = decimal.RequireFromString("0.25")
	fracModerate   = decimal.RequireFromString("0.15")

	multAggressive = decimal.RequireFromString("2.5")
	multModerate   = decimal.RequireFromString("1.5")
)

// TradeSizer maps an opportunity and the available balance to a
// recommended notional. A parseable positive advisory suggestion
// replaces the tiered heuristic outright.
type TradeSizer struct {
	advisor advisoryApp.Advisor // nil disables the advisory override
	ceiling asset.Amount        // absolute cap for the default tier
	logger  logger.LoggerInterface
}

// NewTradeSizer creates a TradeSizer.
func NewTradeSizer(advisor advisoryApp.Advisor, ceiling asset.Amount, log logger.LoggerInterface) *TradeSizer {
	return &TradeSizer{advisor: advisor, ceiling: ceiling, logger: log}
}

// Recommend returns the notional to commit.
func (s *TradeSizer) Recommend(ctx context.Context, opp *domain.Opportunity, balance asset.Amount) (asset.Amount, error) {
	if s.advisor != nil && opp.PriceDiffPct.GreaterThan(advisoryGate) {
		if size, ok := s.consultAdvisor(ctx, opp, balance); ok {
			return size, nil
		}
	}
	return s.heuristicSize(opp, balance)
}

func (s *TradeSizer) heuristicSize(opp *domain.Opportunity, balance asset.Amount) (asset.Amount, error) {
	def, err := balance.ScaleDec(fracDefault)
	if err != nil {
		return asset.Amount{}, err
	}

	switch {
	case opp.NetProfitPct.GreaterThan(tierAggressive):
		// min(balance*0.25, default*2.5)
		a, err := balance.ScaleDec(fracAggressive)
		if err != nil {
			return asset.Amount{}, err
		}
		b, err := def.ScaleDec(multAggressive)
		if err != nil {
			return asset.Amount{}, err
		}
		return a.Min(b)

	case opp.NetProfitPct.GreaterThan(tierModerate):
		// min(balance*0.15, default*1.5)
		a, err := balance.ScaleDec(fracModerate)
		if err != nil {
			return asset.Amount{}, err
		}
		b, err := def.ScaleDec(multModerate)
		if err != nil {
			return asset.Amount{}, err
		}
		return a.Min(b)

	default:
		return def.Min(s.ceiling)
	}
}

func (s *TradeSizer) consultAdvisor(ctx context.Context, opp *domain.Opportunity, balance asset.Amount) (asset.Amount, bool) {
	prompt := fmt.Sprintf(
		"Recommend a trade size in %s units as a bare number. Available balance %s, "+
			"price gap %s%%, estimated net profit %s%%, risk tier %s.",
		balance.Asset().Symbol(), balance,
		opp.PriceDiffPct.StringFixed(4), opp.NetProfitPct.StringFixed(4), riskTierOf(opp))

	text, err := s.advisor.Advise(ctx, prompt)
	if err != nil {
		s.logger.Debug(ctx, "sizing advisory unavailable, using heuristic", "error", err)
		return asset.Amount{}, false
	}

	suggestion, err := advisoryDomain.ParseNumber(text)
	if err != nil || !suggestion.IsPositive() {
		s.logger.Debug(ctx, "sizing advisory unusable, using heuristic",
			"error", err, "raw", text)
		return asset.Amount{}, false
	}

	size, err := asset.ParseDecimal(balance.Asset(), suggestion.Truncate(int32(balance.Asset().Decimals())))
	if err != nil {
		s.logger.Debug(ctx, "sizing advisory not representable, using heuristic", "error", err)
		return asset.Amount{}, false
	}

	s.logger.Info(ctx, "advisory sizing override applied", "size", size)
	return size, true
}

func riskTierOf(opp *domain.Opportunity) domain.RiskLevel {
	if opp.Risk == nil {
		return domain.RiskUnknown
	}
	return opp.Risk.Level
}
