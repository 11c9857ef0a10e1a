package asset

// LamportsPerSOL is the number of base units in one SOL.
const LamportsPerSOL = 1_000_000_000

// Well-known mint addresses on Solana mainnet-beta.
const (
	MintSOL  = "So11111111111111111111111111111111111111112" // wrapped SOL
	MintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	MintUSDT = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
	MintJUP  = "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN"
	MintBONK = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
	MintRAY  = "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R"
	MintMSOL = "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So"
	MintWIF  = "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm"
)

// Well-known Assets (pre-created instances).
var (
	SOL  = NewAssetWithName(NewAssetID(MintSOL), "SOL", "Solana", 9)
	USDC = NewAssetWithName(NewAssetID(MintUSDC), "USDC", "USD Coin", 6)
	USDT = NewAssetWithName(NewAssetID(MintUSDT), "USDT", "Tether USD", 6)
	JUP  = NewAssetWithName(NewAssetID(MintJUP), "JUP", "Jupiter", 6)
	BONK = NewAssetWithName(NewAssetID(MintBONK), "BONK", "Bonk", 5)
	RAY  = NewAssetWithName(NewAssetID(MintRAY), "RAY", "Raydium", 6)
	MSOL = NewAssetWithName(NewAssetID(MintMSOL), "mSOL", "Marinade staked SOL", 9)
	WIF  = NewAssetWithName(NewAssetID(MintWIF), "WIF", "dogwifhat", 6)
)

// DefaultRegistry returns a registry pre-populated with well-known assets.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(SOL)
	r.Register(USDC)
	r.Register(USDT)
	r.Register(JUP)
	r.Register(BONK)
	r.Register(RAY)
	r.Register(MSOL)
	r.Register(WIF)

	return r
}

// MustNewToken creates a new SPL token asset for registering custom tokens.
func MustNewToken(mint, symbol, name string, decimals uint8) *Asset {
	return NewAssetWithName(NewAssetID(mint), symbol, name, decimals)
}
