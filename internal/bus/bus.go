// Package bus provides the in-process message bus that connects bounded
// contexts. Commands and queries are dispatched by request type to exactly
// one handler; integration events fan out to every subscriber. Generic
// helpers (Handle, Subscribe, Invoke) give call sites full type safety over
// the untyped ports.Bus methods.
package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/taskfolio/taskfolio/internal/ports"
)

// Compile-time check that Bus implements ports.Bus.
var _ ports.Bus = (*Bus)(nil)

// Bus is a thread-safe in-process implementation of ports.Bus. Handlers and
// subscribers are registered during wiring; dispatch happens concurrently
// across requests.
type Bus struct {
	mu          sync.RWMutex
	handlers    map[reflect.Type]func(ctx context.Context, request any) (any, error)
	subscribers map[reflect.Type][]subscriber
	logger      *slog.Logger
}

type subscriber struct {
	name string
	fn   func(ctx context.Context, event any) error
}

// New creates an empty bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bus{
		handlers:    make(map[reflect.Type]func(ctx context.Context, request any) (any, error)),
		subscribers: make(map[reflect.Type][]subscriber),
		logger:      logger,
	}
}

// Handle registers fn as the single handler for requests of type Req.
// Registering a second handler for the same type panics: that is a wiring
// bug, caught at startup.
func Handle[Req, Res any](b *Bus, fn func(ctx context.Context, request Req) (Res, error)) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.handlers[reqType]; exists {
		panic(fmt.Sprintf("bus: handler already registered for %s", reqType))
	}
	b.handlers[reqType] = func(ctx context.Context, request any) (any, error) {
		return fn(ctx, request.(Req))
	}
}

// Subscribe registers fn as a subscriber for events of type E. Multiple
// subscribers per event type are allowed; they run in registration order.
func Subscribe[E any](b *Bus, name string, fn func(ctx context.Context, event E) error) {
	eventType := reflect.TypeOf((*E)(nil)).Elem()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], subscriber{
		name: name,
		fn: func(ctx context.Context, event any) error {
			return fn(ctx, event.(E))
		},
	})
}

// Invoke dispatches a command or query to its registered handler.
func (b *Bus) Invoke(ctx context.Context, request any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reqType := reflect.TypeOf(request)

	b.mu.RLock()
	handler, ok := b.handlers[reqType]
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("bus: no handler registered for %s", reqType)
	}
	return handler(ctx, request)
}

// Publish delivers an integration event to all subscribers in registration
// order. A failing subscriber does not stop later ones; all errors are
// joined and returned.
func (b *Bus) Publish(ctx context.Context, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eventType := reflect.TypeOf(event)

	b.mu.RLock()
	subs := make([]subscriber, len(b.subscribers[eventType]))
	copy(subs, b.subscribers[eventType])
	b.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := sub.fn(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "event subscriber failed",
				slog.String("operation", "Bus.Publish"),
				slog.String("event", eventType.String()),
				slog.String("subscriber", sub.name),
				slog.Any("error", err),
			)
			errs = append(errs, fmt.Errorf("subscriber %s: %w", sub.name, err))
		}
	}
	return errors.Join(errs...)
}

// Invoke is the typed wrapper over ports.Bus.Invoke used by inbound
// adapters and cross-context callers.
func Invoke[Req, Res any](ctx context.Context, b ports.Bus, request Req) (Res, error) {
	result, err := b.Invoke(ctx, request)
	if err != nil {
		var zero Res
		return zero, err
	}

	typed, ok := result.(Res)
	if !ok {
		var zero Res
		return zero, fmt.Errorf("bus: handler for %T returned %T, want %T", request, result, zero)
	}
	return typed, nil
}
