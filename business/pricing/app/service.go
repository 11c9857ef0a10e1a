// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"
	"time"

	"github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/logger"
)

// PricingService collects per-venue price observations through the
// aggregator quote source.
type PricingService struct {
	quotes QuoteSource
	logger logger.LoggerInterface

	// delay paces consecutive quote calls within one scan.
	delay time.Duration
}

// NewPricingService creates a new PricingService.
func NewPricingService(quotes QuoteSource, delay time.Duration, log logger.LoggerInterface) *PricingService {
	return &PricingService{
		quotes: quotes,
		logger: log,
		delay:  delay,
	}
}

// CollectObservations fetches one venue-restricted quote per venue and
// converts each into a price observation. A failing venue is logged and
// skipped, never aborting the scan; callers decide whether the surviving
// observation count is sufficient.
func (s *PricingService) CollectObservations(
	ctx context.Context,
	pair domain.Pair,
	notional asset.Amount,
	venues []string,
) ([]domain.PriceObservation, error) {
	observations := make([]domain.PriceObservation, 0, len(venues))

	for i, venue := range venues {
		if i > 0 && s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return observations, ctx.Err()
			}
		}

		quote, err := s.quotes.GetQuote(ctx, pair.Base, pair.Quote, notional, QuoteOptions{
			OnlyVenues: []string{venue},
		})
		if err != nil {
			s.logger.Warn(ctx, "quote failed, dropping venue from scan",
				"venue", venue, "pair", pair.String(), "error", err)
			continue
		}
		if quote.Price.IsZero() {
			s.logger.Warn(ctx, "zero-priced quote, dropping venue from scan",
				"venue", venue, "pair", pair.String())
			continue
		}

		observations = append(observations, domain.PriceObservation{
			Venue:     venue,
			Price:     quote.Price,
			Timestamp: quote.Timestamp,
		})
	}

	s.logger.Debug(ctx, "scan collected observations",
		"pair", pair.String(), "requested", len(venues), "collected", len(observations))

	return observations, nil
}
