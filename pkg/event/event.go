// Package event provides a small synchronous event dispatcher.
package event

import (
	"context"
	"sync"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload interface{})

// Dispatcher routes fired events to the listeners registered for them.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}}
}

// Default is the process-wide dispatcher used by the package functions.
var Default = NewDispatcher()

// Listen registers a handler for the given event name.
func (d *Dispatcher) Listen(event string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = append(d.handlers[event], handler)
}

// Fire dispatches an event synchronously, in registration order.
func (d *Dispatcher) Fire(ctx context.Context, event string, payload interface{}) {
	d.mu.RLock()
	hs := append([]Handler(nil), d.handlers[event]...)
	d.mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
}

// Flush removes all listeners (useful in tests).
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = map[string][]Handler{}
}

func Listen(event string, handler Handler) { Default.Listen(event, handler) }

func Fire(ctx context.Context, event string, payload interface{}) {
	Default.Fire(ctx, event, payload)
}

func Flush() { Default.Flush() }
