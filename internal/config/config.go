// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Solana    SolanaConfig    `mapstructure:"solana"`
	Jupiter   JupiterConfig   `mapstructure:"jupiter"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Arbitrage ArbitrageConfig `mapstructure:"arbitrage"`
	Risk      RiskConfig      `mapstructure:"risk"`
	Advisory  AdvisoryConfig  `mapstructure:"advisory"`
	Margin    MarginConfig    `mapstructure:"margin"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// SolanaConfig holds Solana RPC configuration.
type SolanaConfig struct {
	RPCURL         string        `mapstructure:"rpc_url"`
	WalletAddress  string        `mapstructure:"wallet_address"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// JupiterConfig holds quote-aggregator API configuration.
type JupiterConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	SlippageBps       int           `mapstructure:"slippage_bps"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// FeedConfig holds the reference price feed configuration.
type FeedConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	WebSocketURL string        `mapstructure:"websocket_url"`
	Symbol       string        `mapstructure:"symbol"`
	WindowSize   int           `mapstructure:"window_size"`
	StaleTimeout time.Duration `mapstructure:"stale_timeout"`
}

// ArbitrageConfig holds opportunity evaluation configuration.
type ArbitrageConfig struct {
	Venues              []string           `mapstructure:"venues"`
	VenueFees           map[string]float64 `mapstructure:"venue_fees"`       // percent per leg
	TradeNotionalSOL    float64            `mapstructure:"trade_notional_sol"`
	MinProfitPct        float64            `mapstructure:"min_profit_pct"`
	MinBalanceSOL       float64            `mapstructure:"min_balance_sol"`
	MaxTradeSOL         float64            `mapstructure:"max_trade_sol"`    // fixed sizing ceiling
	NetworkFeeLamports  uint64             `mapstructure:"network_fee_lamports"`
	SlippageBasePct     float64            `mapstructure:"slippage_base_pct"`
	VenueLiquidity      map[string]float64 `mapstructure:"venue_liquidity"`  // liquidity factors
	Interval            time.Duration      `mapstructure:"interval"`
	QuoteDelay          time.Duration      `mapstructure:"quote_delay"`
	PathSearchEnabled   bool               `mapstructure:"path_search_enabled"`
	MaxHops             int                `mapstructure:"max_hops"`
	HopDelay            time.Duration      `mapstructure:"hop_delay"`
	TUIMode             bool               `mapstructure:"-"` // set at runtime
}

// RiskConfig holds risk-model parameters. The liquidity constant and the
// slippage coefficients are uncalibrated heuristics, so they live in
// config rather than in code.
type RiskConfig struct {
	Enabled              bool    `mapstructure:"enabled"`
	AssumedPoolLiquidity float64 `mapstructure:"assumed_pool_liquidity"` // SOL
	DefaultVolatilityPct float64 `mapstructure:"default_volatility_pct"`
}

// AdvisoryConfig holds the optional advisory engine configuration.
type AdvisoryConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// MarginConfig holds the optional margin-position health gate.
type MarginConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	CollateralLamports uint64 `mapstructure:"collateral_lamports"`
	BorrowedLamports   uint64 `mapstructure:"borrowed_lamports"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
	SnapshotDir    string `mapstructure:"snapshot_dir"`
}

// MinProfitPctDecimal returns the profitability threshold as a decimal.
func (c *ArbitrageConfig) MinProfitPctDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinProfitPct)
}

// VenueFeesDecimal returns the per-venue fee table as decimals.
func (c *ArbitrageConfig) VenueFeesDecimal() map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal, len(c.VenueFees))
	for venue, fee := range c.VenueFees {
		result[venue] = decimal.NewFromFloat(fee)
	}
	return result
}

// VenueLiquidityDecimal returns the liquidity factor table as decimals.
func (c *ArbitrageConfig) VenueLiquidityDecimal() map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal, len(c.VenueLiquidity))
	for venue, f := range c.VenueLiquidity {
		result[venue] = decimal.NewFromFloat(f)
	}
	return result
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("SOLARB")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "SOLARB_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "SOLARB_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "SOLARB_LOG_LEVEL", "LOG_LEVEL")

	// Solana
	v.BindEnv("solana.rpc_url", "SOLARB_RPC_URL", "SOLANA_RPC_URL")
	v.BindEnv("solana.wallet_address", "SOLARB_WALLET_ADDRESS", "WALLET_ADDRESS")

	// Jupiter
	v.BindEnv("jupiter.base_url", "SOLARB_JUPITER_URL", "JUPITER_URL")

	// Arbitrage
	v.BindEnv("arbitrage.min_profit_pct", "SOLARB_MIN_PROFIT_PCT")
	v.BindEnv("arbitrage.trade_notional_sol", "SOLARB_TRADE_NOTIONAL_SOL")
	v.BindEnv("arbitrage.interval", "SOLARB_INTERVAL")

	// Advisory
	v.BindEnv("advisory.enabled", "SOLARB_ADVISORY_ENABLED")
	v.BindEnv("advisory.api_key", "SOLARB_ADVISORY_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("advisory.base_url", "SOLARB_ADVISORY_URL")

	// Telemetry
	v.BindEnv("telemetry.enabled", "SOLARB_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "SOLARB_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "SOLARB_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "sol-arb-bot")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Solana defaults
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("solana.request_timeout", "10s")

	// Jupiter defaults
	v.SetDefault("jupiter.base_url", "https://quote-api.jup.ag/v6")
	v.SetDefault("jupiter.request_timeout", "10s")
	v.SetDefault("jupiter.slippage_bps", 50)
	v.SetDefault("jupiter.requests_per_minute", 60)

	// Reference feed defaults
	v.SetDefault("feed.enabled", false)
	v.SetDefault("feed.websocket_url", "wss://stream.binance.com:9443")
	v.SetDefault("feed.symbol", "SOLUSDC")
	v.SetDefault("feed.window_size", 120)
	v.SetDefault("feed.stale_timeout", "30s")

	// Arbitrage defaults
	v.SetDefault("arbitrage.venues", []string{"Orca", "Raydium", "Meteora", "Phoenix"})
	v.SetDefault("arbitrage.venue_fees", map[string]float64{
		"Orca":    0.30,
		"Raydium": 0.25,
		"Meteora": 0.25,
		"Phoenix": 0.10,
	})
	v.SetDefault("arbitrage.trade_notional_sol", 0.1)
	v.SetDefault("arbitrage.min_profit_pct", 1.0)
	v.SetDefault("arbitrage.min_balance_sol", 0.1)
	v.SetDefault("arbitrage.max_trade_sol", 5.0)
	v.SetDefault("arbitrage.network_fee_lamports", 900_000) // two-hop swap cycle
	v.SetDefault("arbitrage.slippage_base_pct", 0.1)
	v.SetDefault("arbitrage.venue_liquidity", map[string]float64{
		"Orca":     1.2,
		"Raydium":  1.3,
		"Meteora":  0.9,
		"Phoenix":  0.8,
		"Lifinity": 0.7,
	})
	v.SetDefault("arbitrage.interval", "30s")
	v.SetDefault("arbitrage.quote_delay", "500ms")
	v.SetDefault("arbitrage.path_search_enabled", false)
	v.SetDefault("arbitrage.max_hops", 3)
	v.SetDefault("arbitrage.hop_delay", "1s")

	// Risk defaults
	v.SetDefault("risk.enabled", true)
	v.SetDefault("risk.assumed_pool_liquidity", 1000.0)
	v.SetDefault("risk.default_volatility_pct", 1.0)

	// Advisory defaults
	v.SetDefault("advisory.enabled", false)
	v.SetDefault("advisory.base_url", "https://api.openai.com/v1")
	v.SetDefault("advisory.model", "gpt-4o-mini")
	v.SetDefault("advisory.request_timeout", "15s")

	// Margin defaults
	v.SetDefault("margin.enabled", false)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "sol-arb-bot")
	v.SetDefault("telemetry.prometheus_port", 9090)
	v.SetDefault("telemetry.snapshot_dir", "snapshots")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Solana.RPCURL == "" {
		return fmt.Errorf("solana.rpc_url is required")
	}
	if c.Jupiter.BaseURL == "" {
		return fmt.Errorf("jupiter.base_url is required")
	}
	if len(c.Arbitrage.Venues) < 2 {
		return fmt.Errorf("arbitrage.venues needs at least two venues, got %d", len(c.Arbitrage.Venues))
	}
	if c.Arbitrage.TradeNotionalSOL <= 0 {
		return fmt.Errorf("arbitrage.trade_notional_sol must be positive")
	}
	if c.Arbitrage.MinProfitPct < 0 {
		return fmt.Errorf("arbitrage.min_profit_pct must not be negative")
	}
	if c.Arbitrage.MaxHops < 2 {
		return fmt.Errorf("arbitrage.max_hops must be at least 2")
	}
	if c.Advisory.Enabled && c.Advisory.APIKey == "" {
		return fmt.Errorf("advisory.api_key is required when advisory is enabled")
	}
	if c.Margin.Enabled && c.Margin.BorrowedLamports == 0 {
		return fmt.Errorf("margin.borrowed_lamports must be positive when margin gate is enabled")
	}
	return nil
}
