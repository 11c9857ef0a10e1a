// Package di provides a minimal service container for module wiring.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry is the read side of the container.
type ServiceRegistry interface {
	// Get returns the service registered under name, resolving its
	// factory on first use. Panics if the name is unknown.
	Get(name string) any
}

// Container registers and resolves services by name.
type Container interface {
	ServiceRegistry

	// Register stores an already-constructed service.
	Register(name string, service any)

	// RegisterFactory stores a lazily-resolved service. The factory runs
	// at most once; the result is memoized.
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

type container struct {
	mu        sync.RWMutex
	services  map[string]any
	factories map[string]func(ServiceRegistry) any
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		services:  make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
	}
}

func (c *container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.services[name]; exists {
		panic(fmt.Sprintf("di: service %q already registered", name))
	}
	c.services[name] = service
}

func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[name]; exists {
		panic(fmt.Sprintf("di: factory %q already registered", name))
	}
	c.factories[name] = factory
}

func (c *container) Get(name string) any {
	c.mu.RLock()
	if s, ok := c.services[name]; ok {
		c.mu.RUnlock()
		return s
	}
	factory, ok := c.factories[name]
	c.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("di: service %q not registered", name))
	}

	// Resolve outside the lock so factories can Get their own dependencies.
	s := factory(c)

	c.mu.Lock()
	if existing, ok := c.services[name]; ok {
		// Another goroutine resolved it first.
		c.mu.Unlock()
		return existing
	}
	c.services[name] = s
	c.mu.Unlock()
	return s
}

// Token is a typed handle for a registered service.
type Token[T any] struct {
	name string
}

// NewToken creates a typed token with a unique name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the token's registration name.
func (t Token[T]) Name() string {
	return t.name
}

// RegisterToken registers a typed factory under the token's name.
func RegisterToken[T any](c Container, token Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(token.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves a typed service by token. A registered nil (an
// intentionally absent optional service) resolves to the zero value.
func GetToken[T any](r ServiceRegistry, token Token[T]) T {
	s := r.Get(token.name)
	if s == nil {
		var zero T
		return zero
	}
	typed, ok := s.(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q has unexpected type", token.name))
	}
	return typed
}
