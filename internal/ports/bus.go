package ports

import (
	"context"
	"time"
)

// Bus is the in-process message bus connecting bounded contexts. Commands
// and queries dispatch to exactly one registered handler keyed by request
// type; integration events fan out to every subscriber. Typed wrappers over
// these untyped methods live in the bus package.
type Bus interface {
	// Invoke dispatches a command or query to its registered handler and
	// returns the handler's result. Fails if no handler is registered for
	// the request's type.
	Invoke(ctx context.Context, request any) (any, error)

	// Publish delivers an integration event to all subscribers in
	// registration order. Subscriber errors are joined and returned;
	// later subscribers still run.
	Publish(ctx context.Context, event any) error
}

// Clock yields the current UTC time. Domain logic never reads the wall
// clock directly; handlers obtain timestamps here and pass them into
// aggregate methods, keeping the domain deterministic under test.
type Clock interface {
	Now() time.Time
}
