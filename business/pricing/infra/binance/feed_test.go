package binance

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/logger"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) With(args ...any) logger.LoggerInterface            { return m }

func tick(bid, ask string) []byte {
	return []byte(fmt.Sprintf(`{"u":1,"s":"SOLUSDC","b":"%s","B":"10","a":"%s","A":"10"}`, bid, ask))
}

func TestFeed_VolatilityPct(t *testing.T) {
	feed := NewFeed(FeedConfig{Symbol: "SOLUSDC", WindowSize: 8}, &mockLogger{})
	ctx := context.Background()

	// Constant mid price => zero volatility
	for i := 0; i < 4; i++ {
		feed.handleMessage(ctx, tick("100.00", "100.20"))
	}
	if !feed.VolatilityPct().IsZero() {
		t.Errorf("constant price volatility = %s, want 0", feed.VolatilityPct())
	}
	if !feed.MidPrice().Equal(decimal.RequireFromString("100.1")) {
		t.Errorf("mid = %s, want 100.1", feed.MidPrice())
	}

	// Oscillating mids raise the estimate
	feed.handleMessage(ctx, tick("104.90", "105.10"))
	feed.handleMessage(ctx, tick("94.90", "95.10"))

	vol := feed.VolatilityPct()
	if vol.LessThanOrEqual(decimal.Zero) {
		t.Errorf("volatility = %s, want positive after dispersion", vol)
	}
	if vol.GreaterThan(decimal.NewFromInt(100)) {
		t.Errorf("volatility = %s, implausibly large", vol)
	}
}

func TestFeed_VolatilityPct_ColdWindow(t *testing.T) {
	feed := NewFeed(FeedConfig{Symbol: "SOLUSDC", WindowSize: 16}, &mockLogger{})

	if !feed.VolatilityPct().IsZero() {
		t.Error("empty window must report zero volatility")
	}

	feed.handleMessage(context.Background(), tick("100", "100"))
	if !feed.VolatilityPct().IsZero() {
		t.Error("single sample must report zero volatility")
	}
}

func TestFeed_IgnoresBadTicks(t *testing.T) {
	feed := NewFeed(FeedConfig{Symbol: "SOLUSDC", WindowSize: 8}, &mockLogger{})
	ctx := context.Background()

	feed.handleMessage(ctx, []byte(`not json`))
	feed.handleMessage(ctx, tick("0", "100"))
	feed.handleMessage(ctx, tick("abc", "100"))

	if !feed.MidPrice().IsZero() {
		t.Errorf("mid = %s, want zero after only bad ticks", feed.MidPrice())
	}
}
