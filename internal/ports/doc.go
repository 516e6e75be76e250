// Package ports defines the interfaces between layers of the modular
// monolith. Repository and client ports are implemented by outbound adapters
// and called by the application layer; the bus port carries commands,
// queries, and integration events between bounded contexts; health ports are
// implemented by any component that can report readiness.
package ports
