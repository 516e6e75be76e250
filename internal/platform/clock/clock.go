// Package clock provides the injectable UTC clock used by application
// handlers. Domain aggregates never read the wall clock; they take
// timestamps as arguments, so tests swap in a Fixed clock for determinism.
package clock

import (
	"time"

	"github.com/taskfolio/taskfolio/internal/ports"
)

// Compile-time checks.
var (
	_ ports.Clock = System{}
	_ ports.Clock = (*Fixed)(nil)
)

// System reads the wall clock in UTC.
type System struct{}

// Now implements ports.Clock.
func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always reports the same instant. Advance moves it forward.
type Fixed struct {
	At time.Time
}

// NewFixed creates a fixed clock at the given instant.
func NewFixed(at time.Time) *Fixed { return &Fixed{At: at} }

// Now implements ports.Clock.
func (f *Fixed) Now() time.Time { return f.At }

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.At = f.At.Add(d) }
