package jupiter

import (
	"encoding/json"
	"fmt"
)

// SwapInfo describes a single AMM leg inside a route plan.
type SwapInfo struct {
	AmmKey     string `json:"ammKey"`
	Label      string `json:"label"`
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`
	InAmount   string `json:"inAmount"`
	OutAmount  string `json:"outAmount"`
	FeeAmount  string `json:"feeAmount"`
	FeeMint    string `json:"feeMint"`
}

// RouteStep is one leg of the aggregator's routing plan.
type RouteStep struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  int      `json:"percent"`
}

// QuoteResponse is the aggregator's /quote payload.
type QuoteResponse struct {
	InputMint      string      `json:"inputMint"`
	InAmount       string      `json:"inAmount"`
	OutputMint     string      `json:"outputMint"`
	OutAmount      string      `json:"outAmount"`
	PriceImpactPct string      `json:"priceImpactPct"`
	SlippageBps    int         `json:"slippageBps"`
	RoutePlan      []RouteStep `json:"routePlan"`
}

// VenueLabel returns the label of the first route leg, or empty.
func (q *QuoteResponse) VenueLabel() string {
	if len(q.RoutePlan) == 0 {
		return ""
	}
	return q.RoutePlan[0].SwapInfo.Label
}

// APIError represents an error payload from the quote API.
type APIError struct {
	ErrorMessage string `json:"error"`
	ErrorCode    string `json:"errorCode"`
	StatusCode   int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jupiter API error %d (%s): %s", e.StatusCode, e.ErrorCode, e.ErrorMessage)
}

// apiErrorHandler parses quote API error responses.
func apiErrorHandler(statusCode int, body []byte) error {
	if statusCode < 400 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.ErrorMessage != "" {
		apiErr.StatusCode = statusCode
		return &apiErr
	}
	return fmt.Errorf("HTTP %d: %s", statusCode, string(body))
}
