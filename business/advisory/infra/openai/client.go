// Package openai implements the advisory port over an OpenAI-compatible
// chat-completions API.
package openai

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/solwatch/arbbot/business/advisory/app"
	"github.com/solwatch/arbbot/internal/apperror"
	"github.com/solwatch/arbbot/internal/httpclient"
	"github.com/solwatch/arbbot/internal/logger"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"

	completionsEndpoint = "/chat/completions"

	tracerName = "arbbot/advisory/openai"

	defaultTimeout = 15 * time.Second
)

// Ensure Client implements Advisor.
var _ app.Advisor = (*Client)(nil)

// ClientConfig holds configuration for the advisory client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client calls a chat-completions endpoint for advisory prompts.
type Client struct {
	client httpclient.Client
	config ClientConfig
	logger logger.LoggerInterface
	tracer trace.Tracer
}

// NewClient creates an advisory client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("advisory"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(cfg.Timeout),
		httpclient.WithHeaders(map[string]string{
			"Authorization": "Bearer " + cfg.APIKey,
			"Content-Type":  "application/json",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &Client{
		client: client,
		config: cfg,
		logger: log,
		tracer: otel.Tracer(tracerName),
	}, nil
}

// Advise sends one prompt and returns the raw completion text.
func (c *Client) Advise(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "advisory.advise")
	defer span.End()

	var result chatResponse
	resp, err := c.client.NewRequestWithOptions(
		httpclient.WithLabels(httpclient.NewLabel("endpoint", "chat_completions")),
	).
		SetBody(chatRequest{
			Model:       c.config.Model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: 0.2,
		}).
		SetResult(&result).
		Post(ctx, completionsEndpoint)
	if err != nil {
		span.RecordError(err)
		return "", apperror.New(apperror.CodeAdvisoryUnavailable,
			apperror.WithCause(err),
			apperror.WithContext("advisory request failed"))
	}
	if resp.IsError() {
		return "", apperror.New(apperror.CodeAdvisoryUnavailable,
			apperror.WithContext(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.String())))
	}
	if result.Error != nil {
		return "", apperror.New(apperror.CodeAdvisoryUnavailable,
			apperror.WithContext(result.Error.Message))
	}
	if len(result.Choices) == 0 {
		return "", apperror.New(apperror.CodeAdvisoryUnavailable,
			apperror.WithContext("empty completion"))
	}

	text := result.Choices[0].Message.Content
	c.logger.Debug(ctx, "advisory response received", "chars", len(text))
	return text, nil
}
