// Package domain contains shared domain types used across bounded-context
// sub-packages. Context-specific aggregates live in sub-packages
// (domain/todolist, domain/user); the query/paging core lives in
// domain/paging. This root package holds sentinel errors, validation types,
// and the domain event contract shared across all contexts.
package domain
