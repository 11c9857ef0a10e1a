// Package binance implements the reference price feed over the public
// bookTicker WebSocket stream.
package binance

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/business/pricing/app"
	"github.com/solwatch/arbbot/internal/logger"
	"github.com/solwatch/arbbot/internal/wsconn"
)

const (
	BaseWSURL = "wss://stream.binance.com:9443"

	defaultWindowSize = 120
)

// Ensure Feed implements ReferenceFeed.
var _ app.ReferenceFeed = (*Feed)(nil)

// bookTickerEvent is the bookTicker stream payload.
type bookTickerEvent struct {
	UpdateID int64  `json:"u"`
	Symbol   string `json:"s"`
	BidPrice string `json:"b"`
	BidQty   string `json:"B"`
	AskPrice string `json:"a"`
	AskQty   string `json:"A"`
}

// FeedConfig holds configuration for the reference feed.
type FeedConfig struct {
	WebSocketURL string        // base URL (empty = default)
	Symbol       string        // e.g. "SOLUSDC"
	WindowSize   int           // mid-price samples kept for volatility
	StaleTimeout time.Duration // data older than this is not trusted
}

// Feed maintains a rolling mid-price window for one symbol and derives
// a volatility estimate from it.
type Feed struct {
	config FeedConfig
	client *wsconn.Client
	logger logger.LoggerInterface

	mu         sync.RWMutex
	window     []float64 // ring buffer of mids
	next       int
	filled     bool
	lastMid    decimal.Decimal
	lastUpdate time.Time
}

// NewFeed creates a reference feed for the configured symbol.
func NewFeed(cfg FeedConfig, log logger.LoggerInterface) *Feed {
	if cfg.WebSocketURL == "" {
		cfg.WebSocketURL = BaseWSURL
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = defaultWindowSize
	}

	streamURL := cfg.WebSocketURL + "/ws/" + strings.ToLower(cfg.Symbol) + "@bookTicker"
	client := wsconn.New(wsconn.DefaultConfig(streamURL))

	return &Feed{
		config:  cfg,
		client:  client,
		logger:  log,
		window:  make([]float64, cfg.WindowSize),
		lastMid: decimal.Zero,
	}
}

// Start connects the stream and begins consuming ticks until ctx ends.
func (f *Feed) Start(ctx context.Context) error {
	if err := f.client.Connect(ctx); err != nil {
		return err
	}
	go f.consume(ctx)
	return nil
}

// Close shuts the feed down.
func (f *Feed) Close() error {
	return f.client.Close()
}

func (f *Feed) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-f.client.Messages():
			if !ok {
				return
			}
			f.handleMessage(ctx, msg)
		}
	}
}

func (f *Feed) handleMessage(ctx context.Context, msg []byte) {
	var event bookTickerEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		f.logger.Warn(ctx, "unparseable feed message", "error", err)
		return
	}

	bid, err1 := strconv.ParseFloat(event.BidPrice, 64)
	ask, err2 := strconv.ParseFloat(event.AskPrice, 64)
	if err1 != nil || err2 != nil || bid <= 0 || ask <= 0 {
		return
	}
	mid := (bid + ask) / 2

	f.mu.Lock()
	f.window[f.next] = mid
	f.next++
	if f.next == len(f.window) {
		f.next = 0
		f.filled = true
	}
	f.lastMid = decimal.NewFromFloat(mid)
	f.lastUpdate = time.Now()
	f.mu.Unlock()
}

// MidPrice returns the latest reference mid price, or zero.
func (f *Feed) MidPrice() decimal.Decimal {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastMid
}

// Connected reports whether the feed has fresh data.
func (f *Feed) Connected() bool {
	if f.client.State() != wsconn.StateConnected {
		return false
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.lastUpdate.IsZero() {
		return false
	}
	if f.config.StaleTimeout > 0 && time.Since(f.lastUpdate) > f.config.StaleTimeout {
		return false
	}
	return true
}

// VolatilityPct returns the rolling volatility of the mid price,
// stddev/mean as a percentage. Zero until the window is warm.
func (f *Feed) VolatilityPct() decimal.Decimal {
	f.mu.RLock()
	defer f.mu.RUnlock()

	samples := f.window
	if !f.filled {
		samples = f.window[:f.next]
	}
	if len(samples) < 2 {
		return decimal.Zero
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(len(samples))
	if mean == 0 {
		return decimal.Zero
	}

	var variance float64
	for _, v := range samples {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(samples))

	return decimal.NewFromFloat(math.Sqrt(variance) / mean * 100)
}
