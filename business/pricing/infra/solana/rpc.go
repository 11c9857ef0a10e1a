// Package solana implements the balance source over Solana JSON-RPC.
package solana

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/solwatch/arbbot/business/pricing/app"
	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/circuitbreaker"
	"github.com/solwatch/arbbot/internal/httpclient"
	"github.com/solwatch/arbbot/internal/logger"
)

const (
	tracerName = "arbbot/pricing/solana"

	defaultTimeout = 10 * time.Second
)

// Ensure RPCClient implements BalanceSource.
var _ app.BalanceSource = (*RPCClient)(nil)

// rpcRequest is a JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// rpcError is a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// balanceResponse is the getBalance response envelope.
type balanceResponse struct {
	Result struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value uint64 `json:"value"`
	} `json:"result"`
	Error *rpcError `json:"error"`
}

// RPCClientConfig holds configuration for the RPC client.
type RPCClientConfig struct {
	URL     string
	Timeout time.Duration
}

// RPCClient queries wallet balances over Solana JSON-RPC.
type RPCClient struct {
	client  httpclient.Client
	breaker *circuitbreaker.CircuitBreaker[*balanceResponse]
	logger  logger.LoggerInterface
	tracer  trace.Tracer
}

// NewRPCClient creates a new RPC balance client.
func NewRPCClient(cfg RPCClientConfig, log logger.LoggerInterface) (*RPCClient, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	tracer := otel.Tracer(tracerName)

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("solana-rpc"),
		httpclient.WithBaseURL(cfg.URL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithHeaders(map[string]string{
			"Content-Type": "application/json",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	breaker := circuitbreaker.New[*balanceResponse](
		circuitbreaker.DefaultConfig("solana-rpc"), nil)

	return &RPCClient{
		client:  client,
		breaker: breaker,
		logger:  log,
		tracer:  tracer,
	}, nil
}

// Balance returns the owner's native balance in lamports.
func (c *RPCClient) Balance(ctx context.Context, owner string) (asset.Amount, error) {
	ctx, span := c.tracer.Start(ctx, "solana.get_balance",
		trace.WithAttributes(attribute.String("owner", owner)),
	)
	defer span.End()

	if c.breaker.IsOpen() {
		return asset.Amount{}, apperror.New(apperror.CodeCircuitOpen,
			apperror.WithContext("solana rpc breaker open"))
	}

	resp, err := c.breaker.Execute(func() (*balanceResponse, error) {
		return c.getBalance(ctx, owner)
	})
	if err != nil {
		span.RecordError(err)
		return asset.Amount{}, err
	}

	span.SetAttributes(
		attribute.Int64("lamports", int64(resp.Result.Value)),
		attribute.Int64("slot", int64(resp.Result.Context.Slot)),
	)
	c.logger.Debug(ctx, "balance fetched",
		"owner", owner, "lamports", resp.Result.Value, "slot", resp.Result.Context.Slot)

	return asset.NewAmountFromUint64(asset.SOL, resp.Result.Value), nil
}

func (c *RPCClient) getBalance(ctx context.Context, owner string) (*balanceResponse, error) {
	var result balanceResponse
	resp, err := c.client.NewRequestWithOptions(
		httpclient.WithLabels(httpclient.NewLabel("method", "getBalance")),
	).
		SetBody(rpcRequest{
			JSONRPC: "2.0",
			ID:      1,
			Method:  "getBalance",
			Params:  []any{owner},
		}).
		SetResult(&result).
		Post(ctx, "")
	if err != nil {
		return nil, apperror.New(apperror.CodeRPCBalanceFailed,
			apperror.WithCause(err),
			apperror.WithContext("getBalance request failed"))
	}
	if resp.IsError() {
		return nil, apperror.New(apperror.CodeRPCBalanceFailed,
			apperror.WithContext(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.String())))
	}
	if result.Error != nil {
		return nil, apperror.New(apperror.CodeRPCError,
			apperror.WithContext(fmt.Sprintf("rpc error %d: %s", result.Error.Code, result.Error.Message)))
	}

	return &result, nil
}
