package metrics

import "os"

// Provider names a metric export backend.
type Provider string

const (
	// PrometheusProvider exposes a pull endpoint via ServePrometheusMetrics.
	PrometheusProvider Provider = "prometheus"
	// OtelCollector pushes over OTLP/gRPC to a collector.
	OtelCollector Provider = "otelCollector"
)

// NewOtelCollectorConfig builds a push config for an OTLP collector.
func NewOtelCollectorConfig(url string, headers map[string]string, insecure bool) ProviderCfg {
	return ProviderCfg{
		Provider: OtelCollector,
		Endpoint: url,
		Headers:  headers,
		Insecure: insecure,
	}
}

// NewOtelCollectorConfigFromEnv reads the standard OTEL env vars.
func NewOtelCollectorConfigFromEnv() ProviderCfg {
	return NewOtelCollectorConfig(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"), nil, false)
}

// Config is the accumulated provider configuration.
type Config struct {
	ServiceName string
	Provider    []ProviderCfg
}

// ProviderCfg configures one export backend.
type ProviderCfg struct {
	Provider Provider
	Endpoint string
	Headers  map[string]string
	Insecure bool
}

// OptionFn configures the meter provider.
type OptionFn func(config Config) Config

// WithProviderConfig adds an export backend. Multiple backends read the
// same meter provider.
func WithProviderConfig(provider ProviderCfg) OptionFn {
	return func(config Config) Config {
		config.Provider = append(config.Provider, provider)
		return config
	}
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(serviceName string) OptionFn {
	return func(config Config) Config {
		config.ServiceName = serviceName
		return config
	}
}

// PromServerConfig configures the scrape endpoint.
type PromServerConfig struct {
	port string
}

// PromOptionFn configures ServePrometheusMetrics.
type PromOptionFn func(config PromServerConfig) PromServerConfig

// WithPort overrides the default scrape port.
func WithPort(port string) PromOptionFn {
	return func(config PromServerConfig) PromServerConfig {
		config.port = port
		return config
	}
}
