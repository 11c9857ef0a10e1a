package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration (fatal at startup)
	CodeConfigurationError  Code = "CONFIGURATION_ERROR"
	CodeWalletIdentityError Code = "WALLET_IDENTITY_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Domain-specific error codes
const (
	// Quote aggregator (Jupiter) errors: "data unavailable", not "no opportunity"
	CodeJupiterQuoteFailed Code = "JUPITER_QUOTE_FAILED"
	CodeEmptyQuoteResponse Code = "EMPTY_QUOTE_RESPONSE"
	CodeUnknownTokenSymbol Code = "UNKNOWN_TOKEN_SYMBOL"
	CodeJupiterRateLimited Code = "JUPITER_RATE_LIMITED"

	// Solana RPC errors
	CodeRPCBalanceFailed Code = "RPC_BALANCE_FAILED"
	CodeRPCError         Code = "RPC_ERROR"

	// Evaluation errors: insufficient input, cycle skipped
	CodeInsufficientObservations Code = "INSUFFICIENT_OBSERVATIONS"
	CodeBalanceBelowFloor        Code = "BALANCE_BELOW_FLOOR"
	CodeZeroNotional             Code = "ZERO_NOTIONAL"

	// Advisory engine errors: always recovered locally by the caller
	CodeAdvisoryUnavailable Code = "ADVISORY_UNAVAILABLE"
	CodeAdvisoryUnparseable Code = "ADVISORY_UNPARSEABLE"

	// Path search errors: scoped to a single candidate
	CodePathHopFailed    Code = "PATH_HOP_FAILED"
	CodeInvalidPathShape Code = "INVALID_PATH_SHAPE"

	// Reference feed errors
	CodeFeedConnectionError Code = "FEED_CONNECTION_ERROR"
	CodeFeedStale           Code = "FEED_STALE"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
