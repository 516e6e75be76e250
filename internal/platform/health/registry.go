// Package health provides a thread-safe health check registry for tracking
// the health of the service's dependencies (database, completion model). The
// registry backs the readiness endpoint.
package health

import (
	"context"
	"sync"

	"github.com/taskfolio/taskfolio/internal/platform/fanout"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthRegistry = (*Registry)(nil)

// maxConcurrentChecks bounds how many health probes run at once.
const maxConcurrentChecks = 4

// Registry is a thread-safe implementation of [ports.HealthRegistry].
// Components that implement [ports.HealthChecker] are registered at startup
// and checked on each readiness probe.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New creates an empty health check registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll probes all registered components concurrently and returns results
// keyed by checker name. Nil values indicate healthy components. The slice is
// copied under a read lock so checks run without holding the lock; checks are
// independent, so they fan out rather than run serially.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	outcomes := fanout.Run(ctx, maxConcurrentChecks, checkers,
		func(ctx context.Context, c ports.HealthChecker) (struct{}, error) {
			return struct{}{}, c.HealthCheck(ctx)
		})

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = outcomes[i].Err
	}
	return results
}
