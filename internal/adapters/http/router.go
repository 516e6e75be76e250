// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskfolio/taskfolio/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	userHandler *handlers.UserHandler,
	listHandler *handlers.ToDoListHandler,
	suggestionHandler *handlers.SuggestionHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Users.
		r.Post("/users", userHandler.Register)
		r.Get("/users", userHandler.List)
		r.Get("/users/{userId}", userHandler.Get)
		r.Patch("/users/{userId}", userHandler.Rename)
		r.Delete("/users/{userId}", userHandler.Delete)

		// Todo lists, owner-scoped via X-User-ID.
		r.Post("/todolists", listHandler.CreateList)
		r.Get("/todolists", listHandler.ListLists)
		r.Get("/todolists/{listId}", listHandler.GetList)
		r.Patch("/todolists/{listId}", listHandler.RenameList)
		r.Delete("/todolists/{listId}", listHandler.DeleteList)

		// List items.
		r.Post("/todolists/{listId}/items", listHandler.AddItem)
		r.Post("/todolists/{listId}/items/bulk", listHandler.AddItems)
		r.Patch("/todolists/{listId}/items/{todoId}", listHandler.RenameItem)
		r.Delete("/todolists/{listId}/items/{todoId}", listHandler.RemoveItem)
		r.Post("/todolists/{listId}/items/{todoId}/complete", listHandler.CompleteItem)
		r.Delete("/todolists/{listId}/items/{todoId}/complete", listHandler.ReopenItem)

		// AI suggestions (read-only).
		r.Get("/todolists/{listId}/suggestions", suggestionHandler.SuggestItems)
	})

	return r
}
