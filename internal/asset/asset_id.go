// Package asset provides a type-safe model for Solana SPL tokens.
// The core uses big.Int lamport/base-unit values for exact representation.
// decimal.Decimal is only used at boundaries (parsing, display, percent math).
package asset

import "fmt"

// AssetID uniquely identifies a token by its mint address.
// Native SOL is identified by the wrapped-SOL mint, the convention the
// routing aggregator uses on the wire. The symbol is NOT identity,
// just metadata for display.
type AssetID struct {
	mint string // base58 mint address
}

// NewAssetID creates an AssetID from a base58 mint address.
func NewAssetID(mint string) AssetID {
	if mint == "" {
		panic("asset: empty mint address")
	}
	return AssetID{mint: mint}
}

// Mint returns the base58 mint address.
func (id AssetID) Mint() string {
	return id.mint
}

// IsZero reports whether the ID is the zero value.
func (id AssetID) IsZero() bool {
	return id.mint == ""
}

// Equals compares two AssetIDs for equality.
func (id AssetID) Equals(other AssetID) bool {
	return id.mint == other.mint
}

// String returns a human-readable representation.
func (id AssetID) String() string {
	if len(id.mint) > 10 {
		return fmt.Sprintf("mint:%s…%s", id.mint[:4], id.mint[len(id.mint)-4:])
	}
	return "mint:" + id.mint
}
