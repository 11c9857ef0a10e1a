package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	advisoryApp "github.com/solwatch/arbbot/business/advisory/app"
	advisoryDomain "github.com/solwatch/arbbot/business/advisory/domain"
	"github.com/solwatch/arbbot/business/arbitrage/domain"
	pricingApp "github.com/solwatch/arbbot/business/pricing/app"
	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/logger"
)

var hundredPct = decimal.NewFromInt(100)

// PathSearchConfig bounds the multi-hop exploration. Every hop is a real
// network call, so cost is O(candidates x hops); MaxHops and the
// candidate list keep the rate-limit exposure acceptable.
type PathSearchConfig struct {
	StartSymbol string        // cycle anchor, e.g. "SOL"
	MaxHops     int           // max hops per cycle
	HopDelay    time.Duration // pacing between hop quotes
}

// PathSearch explores multi-hop token cycles and ranks them by realized
// round-trip return.
type PathSearch struct {
	quotes   pricingApp.QuoteSource
	registry *asset.Registry
	advisor  advisoryApp.Advisor // nil means fallback candidates only
	config   PathSearchConfig
	logger   logger.LoggerInterface
}

// NewPathSearch creates a PathSearch.
func NewPathSearch(
	quotes pricingApp.QuoteSource,
	registry *asset.Registry,
	advisor advisoryApp.Advisor,
	cfg PathSearchConfig,
	log logger.LoggerInterface,
) *PathSearch {
	return &PathSearch{
		quotes:   quotes,
		registry: registry,
		advisor:  advisor,
		config:   cfg,
		logger:   log,
	}
}

// FindArbitragePaths evaluates candidate cycles for the given input and
// returns them with evaluated candidates first, ranked by descending
// profit. Unevaluated candidates trail the ranking, each carrying its
// hop error.
func (p *PathSearch) FindArbitragePaths(ctx context.Context, input asset.Amount) ([]domain.PathCandidate, error) {
	cycles := p.candidateCycles(ctx)

	candidates := make([]domain.PathCandidate, 0, len(cycles))
	for _, cycle := range cycles {
		if !domain.ValidCycle(cycle, p.config.StartSymbol, p.config.MaxHops) {
			continue
		}

		candidate := p.evaluate(ctx, cycle, input)
		candidates = append(candidates, candidate)

		if ctx.Err() != nil {
			return candidates, ctx.Err()
		}
	}

	// Evaluated candidates first, by profit descending. Candidates that
	// failed a hop never participate in the ranking.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Evaluated != b.Evaluated {
			return a.Evaluated
		}
		if !a.Evaluated {
			return false
		}
		return a.ProfitPct.GreaterThan(b.ProfitPct)
	})

	return candidates, nil
}

// candidateCycles asks the advisor for cycle ideas and falls back to the
// static list on any failure.
func (p *PathSearch) candidateCycles(ctx context.Context) [][]string {
	fallback := fallbackCycles(p.config.StartSymbol)
	if p.advisor == nil {
		return fallback
	}

	prompt := fmt.Sprintf(
		"Suggest promising %s-anchored arbitrage cycles of at most %d hops on Solana DEXes. "+
			"Answer with a JSON array of token-symbol arrays, each starting and ending with %q.",
		p.config.StartSymbol, p.config.MaxHops, p.config.StartSymbol)

	text, err := p.advisor.Advise(ctx, prompt)
	if err != nil {
		p.logger.Debug(ctx, "path advisory unavailable, using fallback cycles", "error", err)
		return fallback
	}

	cycles, err := advisoryDomain.ParsePathSuggestions(text)
	if err != nil {
		p.logger.Debug(ctx, "path advisory unparseable, using fallback cycles", "error", err)
		return fallback
	}
	return cycles
}

func fallbackCycles(start string) [][]string {
	return [][]string{
		{start, "USDC", start},
		{start, "USDT", start},
		{start, "JUP", start},
		{start, "USDC", "JUP", start},
		{start, "RAY", "USDC", start},
	}
}

// evaluate walks one cycle hop by hop, chaining each hop's output into
// the next hop's input. The first failing hop poisons the whole
// candidate; partial results never enter the ranking.
func (p *PathSearch) evaluate(ctx context.Context, cycle []string, input asset.Amount) domain.PathCandidate {
	candidate := domain.PathCandidate{Path: cycle}

	amount := input
	for i := 0; i+1 < len(cycle); i++ {
		if i > 0 && p.config.HopDelay > 0 {
			select {
			case <-time.After(p.config.HopDelay):
			case <-ctx.Done():
				candidate.Err = ctx.Err()
				return candidate
			}
		}

		step, err := p.evaluateHop(ctx, cycle[i], cycle[i+1], amount)
		if err != nil {
			candidate.Err = apperror.Wrap(err, apperror.CodePathHopFailed,
				fmt.Sprintf("hop %s->%s", cycle[i], cycle[i+1]))
			p.logger.Debug(ctx, "path candidate dropped",
				"path", candidate.String(), "error", candidate.Err)
			return candidate
		}

		candidate.Steps = append(candidate.Steps, step)
		amount = step.OutAmount
	}

	initial := input.ToDecimal()
	final := amount.ToDecimal()
	candidate.ProfitPct = final.Sub(initial).Div(initial).Mul(hundredPct)
	candidate.Evaluated = true
	return candidate
}

func (p *PathSearch) evaluateHop(ctx context.Context, from, to string, amount asset.Amount) (domain.PathStep, error) {
	fromAsset, ok := p.registry.GetBySymbol(from)
	if !ok {
		return domain.PathStep{}, apperror.New(apperror.CodeUnknownTokenSymbol,
			apperror.WithContext(from))
	}
	toAsset, ok := p.registry.GetBySymbol(to)
	if !ok {
		return domain.PathStep{}, apperror.New(apperror.CodeUnknownTokenSymbol,
			apperror.WithContext(to))
	}

	quote, err := p.quotes.GetQuote(ctx, fromAsset, toAsset, amount, pricingApp.QuoteOptions{})
	if err != nil {
		return domain.PathStep{}, err
	}

	return domain.PathStep{
		From:      from,
		To:        to,
		InAmount:  amount,
		OutAmount: quote.AmountOut,
		Rate:      quote.Price,
	}, nil
}
