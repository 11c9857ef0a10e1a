package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError:  "Configuration error",
	CodeWalletIdentityError: "Wallet identity could not be loaded",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Quote aggregator errors
	CodeJupiterQuoteFailed: "Failed to get quote from aggregator",
	CodeEmptyQuoteResponse: "Aggregator returned an empty quote",
	CodeUnknownTokenSymbol: "Token symbol has no known mint address",
	CodeJupiterRateLimited: "Aggregator rate limit exceeded",

	// Solana RPC errors
	CodeRPCBalanceFailed: "Failed to fetch wallet balance",
	CodeRPCError:         "Solana RPC call failed",

	// Evaluation errors
	CodeInsufficientObservations: "Fewer than two price observations available",
	CodeBalanceBelowFloor:        "Wallet balance below minimum operating floor",
	CodeZeroNotional:             "Trade notional is zero or near zero",

	// Advisory engine errors
	CodeAdvisoryUnavailable: "Advisory engine unavailable",
	CodeAdvisoryUnparseable: "Advisory response could not be parsed",

	// Path search errors
	CodePathHopFailed:    "Path hop quote lookup failed",
	CodeInvalidPathShape: "Candidate path has invalid shape",

	// Reference feed errors
	CodeFeedConnectionError: "Reference feed connection error",
	CodeFeedStale:           "Reference feed data is stale",

	// Circuit breaker errors
	CodeCircuitOpen: "Circuit breaker is open",
}
