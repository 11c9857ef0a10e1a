// Package jupiter implements the aggregator quote source over the v6 HTTP API.
package jupiter

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/solwatch/arbbot/business/pricing/app"
	"github.com/solwatch/arbbot/business/pricing/domain"
	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/circuitbreaker"
	"github.com/solwatch/arbbot/internal/httpclient"
	"github.com/solwatch/arbbot/internal/logger"
	"github.com/solwatch/arbbot/internal/ratelimit"
)

const (
	BaseAPIURL = "https://quote-api.jup.ag/v6"

	quoteEndpoint = "/quote"

	tracerName = "arbbot/pricing/jupiter"

	defaultTimeout = 10 * time.Second
)

// Ensure Client implements QuoteSource.
var _ app.QuoteSource = (*Client)(nil)

// ClientConfig holds configuration for the quote client.
type ClientConfig struct {
	BaseURL           string        // API base URL (empty = default)
	Timeout           time.Duration // Request timeout
	SlippageBps       int           // Slippage tolerance passed to the API
	RequestsPerMinute int           // Outbound pacing (0 = no limit)
}

// Client fetches swap quotes from the aggregator.
type Client struct {
	client  httpclient.Client
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.CircuitBreaker[*QuoteResponse]
	config  ClientConfig
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewClient creates a new aggregator quote client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseAPIURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	tracer := otel.Tracer(tracerName)

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("jupiter"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(tracer, httpclient.TraceResponse),
		httpclient.WithHeaders(map[string]string{
			"Accept": "application/json",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	var limiter *ratelimit.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = ratelimit.New(cfg.RequestsPerMinute)
	}

	breaker := circuitbreaker.New[*QuoteResponse](
		circuitbreaker.DefaultConfig("jupiter"), nil)

	return &Client{
		client:  client,
		limiter: limiter,
		breaker: breaker,
		config:  cfg,
		logger:  log,
		tracer:  tracer,
	}, nil
}

// GetQuote retrieves a venue-filtered swap quote.
func (c *Client) GetQuote(ctx context.Context, tokenIn, tokenOut *asset.Asset, amountIn asset.Amount, opts app.QuoteOptions) (*domain.Quote, error) {
	ctx, span := c.tracer.Start(ctx, "jupiter.get_quote",
		trace.WithAttributes(
			attribute.String("input", tokenIn.Symbol()),
			attribute.String("output", tokenOut.Symbol()),
			attribute.String("amount", amountIn.String()),
		),
	)
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if c.breaker.IsOpen() {
		return nil, apperror.New(apperror.CodeCircuitOpen,
			apperror.WithContext("jupiter breaker open"))
	}

	resp, err := c.breaker.Execute(func() (*QuoteResponse, error) {
		return c.fetchQuote(ctx, tokenIn, tokenOut, amountIn, opts)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if len(resp.RoutePlan) == 0 || resp.OutAmount == "" {
		return nil, apperror.New(apperror.CodeEmptyQuoteResponse,
			apperror.WithContext(fmt.Sprintf("%s->%s returned no route", tokenIn.Symbol(), tokenOut.Symbol())))
	}

	outRaw, ok := new(big.Int).SetString(resp.OutAmount, 10)
	if !ok {
		return nil, apperror.New(apperror.CodeJupiterQuoteFailed,
			apperror.WithContext(fmt.Sprintf("unparseable outAmount %q", resp.OutAmount)))
	}

	quote := domain.NewQuote(tokenIn, tokenOut, amountIn, asset.NewAmount(tokenOut, outRaw), resp.VenueLabel())

	span.SetAttributes(
		attribute.String("venue", quote.Venue),
		attribute.String("out_amount", resp.OutAmount),
	)
	c.logger.Debug(ctx, "quote fetched",
		"input", tokenIn.Symbol(), "output", tokenOut.Symbol(),
		"venue", quote.Venue, "price", quote.Price.StringFixed(6))

	return &quote, nil
}

func (c *Client) fetchQuote(ctx context.Context, tokenIn, tokenOut *asset.Asset, amountIn asset.Amount, opts app.QuoteOptions) (*QuoteResponse, error) {
	req := c.client.NewRequestWithOptions(
		httpclient.WithLabels(
			httpclient.NewLabel("endpoint", "quote"),
			httpclient.NewLabel("pair", tokenIn.Symbol()+"-"+tokenOut.Symbol()),
		),
		httpclient.WithResponseErrorHandler(apiErrorHandler),
	).
		SetQueryParam("inputMint", tokenIn.Mint()).
		SetQueryParam("outputMint", tokenOut.Mint()).
		SetQueryParam("amount", amountIn.Raw().String()).
		SetQueryParam("slippageBps", strconv.Itoa(c.config.SlippageBps))

	if len(opts.OnlyVenues) > 0 {
		req = req.SetQueryParam("dexes", strings.Join(opts.OnlyVenues, ","))
	}
	if len(opts.ExcludeVenues) > 0 {
		req = req.SetQueryParam("excludeDexes", strings.Join(opts.ExcludeVenues, ","))
	}

	var result QuoteResponse
	resp, err := req.SetResult(&result).Get(ctx, quoteEndpoint)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
			return nil, apperror.New(apperror.CodeJupiterRateLimited, apperror.WithCause(err))
		}
		return nil, apperror.New(apperror.CodeJupiterQuoteFailed,
			apperror.WithCause(err),
			apperror.WithContext("quote request failed"))
	}
	if resp.IsError() {
		if resp.StatusCode == 429 {
			return nil, apperror.New(apperror.CodeJupiterRateLimited,
				apperror.WithContext(resp.String()))
		}
		return nil, apperror.New(apperror.CodeJupiterQuoteFailed,
			apperror.WithContext(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.String())))
	}

	return &result, nil
}
