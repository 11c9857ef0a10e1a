package jupiter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/business/pricing/app"
	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/asset"
	"github.com/solwatch/arbbot/internal/logger"
)

// mockLogger implements logger.LoggerInterface for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) With(args ...any) logger.LoggerInterface            { return m }

var _ logger.LoggerInterface = (*mockLogger)(nil)

func TestClient_GetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("inputMint"); got != asset.MintSOL {
			t.Errorf("inputMint = %s, want SOL mint", got)
		}
		if got := r.URL.Query().Get("amount"); got != "100000000" {
			t.Errorf("amount = %s, want 100000000", got)
		}
		if got := r.URL.Query().Get("dexes"); got != "Orca" {
			t.Errorf("dexes = %s, want Orca", got)
		}

		resp := QuoteResponse{
			InputMint:  asset.MintSOL,
			InAmount:   "100000000",
			OutputMint: asset.MintUSDC,
			OutAmount:  "10050000", // 10.05 USDC for 0.1 SOL => 100.5 USDC/SOL
			RoutePlan: []RouteStep{
				{SwapInfo: SwapInfo{Label: "Orca"}, Percent: 100},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, SlippageBps: 50}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	notional, _ := asset.ParseString(asset.SOL, "0.1")
	quote, err := client.GetQuote(context.Background(), asset.SOL, asset.USDC, notional,
		app.QuoteOptions{OnlyVenues: []string{"Orca"}})
	if err != nil {
		t.Fatalf("GetQuote error: %v", err)
	}

	if quote.Venue != "Orca" {
		t.Errorf("Venue = %s, want Orca", quote.Venue)
	}
	if !quote.Price.Equal(decimal.RequireFromString("100.5")) {
		t.Errorf("Price = %s, want 100.5", quote.Price)
	}
	if quote.AmountOut.Uint64() != 10_050_000 {
		t.Errorf("AmountOut = %d, want 10050000", quote.AmountOut.Uint64())
	}
}

func TestClient_GetQuote_EmptyRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(QuoteResponse{OutAmount: ""})
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	notional, _ := asset.ParseString(asset.SOL, "0.1")
	_, err = client.GetQuote(context.Background(), asset.SOL, asset.USDC, notional, app.QuoteOptions{})
	if err == nil {
		t.Fatal("expected error for empty route")
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeEmptyQuoteResponse {
		t.Errorf("error = %v, want EMPTY_QUOTE_RESPONSE", err)
	}
}

func TestClient_GetQuote_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":     "Could not find any route",
			"errorCode": "COULD_NOT_FIND_ANY_ROUTE",
		})
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	notional, _ := asset.ParseString(asset.SOL, "0.1")
	_, err = client.GetQuote(context.Background(), asset.SOL, asset.USDC, notional, app.QuoteOptions{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if code := apperror.GetCode(err); code != apperror.CodeJupiterQuoteFailed {
		t.Errorf("code = %s, want JUPITER_QUOTE_FAILED", code)
	}
}
