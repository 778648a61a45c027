// Package handle contains the intent handlers (hospital lookup, nearby shops,
// email dispatch), the registry mapping intents to handlers, and the response
// formatter that turns structured results into one-line answers.
package handle

import (
	"fmt"
	"sync"

	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/ports"
)

// Registry maps each intent to the handler responsible for executing it.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[domain.Intent]ports.Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[domain.Intent]ports.Handler),
	}
}

// Register maps an intent to a handler. An existing mapping is overwritten.
func (r *Registry) Register(intent domain.Intent, h ports.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[intent] = h
}

// Lookup returns the handler for an intent, or domain.ErrNoHandler if none is
// registered. The orchestrator guarantees every reachable intent has a
// handler at construction time, making this failure a configuration error.
func (r *Registry) Lookup(intent domain.Intent) (ports.Handler, error) {
	r.mu.RLock()
	h, ok := r.handlers[intent]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoHandler, intent)
	}
	return h, nil
}

// Intents returns the intents that currently have a handler.
func (r *Registry) Intents() []domain.Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Intent, 0, len(r.handlers))
	for intent := range r.handlers {
		out = append(out, intent)
	}
	return out
}
