package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskfolio/taskfolio/internal/adapters/http/dto"
	"github.com/taskfolio/taskfolio/internal/app/suggestions"
	"github.com/taskfolio/taskfolio/internal/bus"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// SuggestionHandler handles HTTP requests for the AiItemSuggestions context.
type SuggestionHandler struct {
	bus ports.Bus
}

// NewSuggestionHandler creates a SuggestionHandler dispatching over the
// given bus.
func NewSuggestionHandler(b ports.Bus) *SuggestionHandler {
	return &SuggestionHandler{bus: b}
}

// SuggestItems handles GET /api/v1/todolists/{listId}/suggestions.
// The optional count query parameter (default 5, max 10) bounds how many
// titles are returned; suggestions are never written to the list.
func (h *SuggestionHandler) SuggestItems(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	count, err := queryInt(r, "count", 0)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	result, err := bus.Invoke[suggestions.SuggestItems, suggestions.Suggestions](r.Context(), h.bus,
		suggestions.SuggestItems{
			OwnerID: owner,
			ListID:  chi.URLParam(r, "listId"),
			Count:   count,
		})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSuggestionsResponse(result))
}
