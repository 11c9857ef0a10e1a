package asset

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe registry of known assets, keyed by mint and
// by symbol. Path-search candidates arrive as symbols; the aggregator
// speaks mints; the registry translates between the two.
type Registry struct {
	byMint   map[string]*Asset
	bySymbol map[string]*Asset
	mu       sync.RWMutex
}

// NewRegistry creates a new empty asset registry.
func NewRegistry() *Registry {
	return &Registry{
		byMint:   make(map[string]*Asset),
		bySymbol: make(map[string]*Asset),
	}
}

// Register adds an asset to the registry.
// Panics if an asset with the same mint or symbol is already registered.
func (r *Registry) Register(a *Asset) {
	if a == nil {
		panic("asset: cannot register nil asset")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byMint[a.Mint()]; exists {
		panic(fmt.Sprintf("asset: mint %s already registered", a.ID()))
	}
	if _, exists := r.bySymbol[a.Symbol()]; exists {
		panic(fmt.Sprintf("asset: symbol %s already registered", a.Symbol()))
	}

	r.byMint[a.Mint()] = a
	r.bySymbol[a.Symbol()] = a
}

// GetByMint retrieves an asset by its base58 mint address.
func (r *Registry) GetByMint(mint string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byMint[mint]
	return a, ok
}

// GetBySymbol retrieves an asset by its ticker symbol.
func (r *Registry) GetBySymbol(symbol string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.bySymbol[symbol]
	return a, ok
}

// MustGetBySymbol retrieves an asset by symbol, panics if not found.
func (r *Registry) MustGetBySymbol(symbol string) *Asset {
	a, ok := r.GetBySymbol(symbol)
	if !ok {
		panic(fmt.Sprintf("asset: symbol %s not found in registry", symbol))
	}
	return a
}

// All returns all registered assets.
func (r *Registry) All() []*Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Asset, 0, len(r.byMint))
	for _, a := range r.byMint {
		result = append(result, a)
	}
	return result
}

// Count returns the number of registered assets.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byMint)
}
