package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskfolio/taskfolio/internal/adapters/http/dto"
	"github.com/taskfolio/taskfolio/internal/app/todolists"
	"github.com/taskfolio/taskfolio/internal/bus"
	"github.com/taskfolio/taskfolio/internal/platform/config"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// ToDoListHandler handles HTTP requests for the ToDoLists bounded context.
// Every operation is owner-scoped: the caller from X-User-ID must own the
// addressed list.
type ToDoListHandler struct {
	bus    ports.Bus
	paging config.PaginationConfig
}

// NewToDoListHandler creates a ToDoListHandler dispatching over the given bus.
func NewToDoListHandler(b ports.Bus, paging config.PaginationConfig) *ToDoListHandler {
	return &ToDoListHandler{bus: b, paging: paging}
}

// CreateList handles POST /api/v1/todolists.
func (h *ToDoListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.CreateListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := bus.Invoke[todolists.CreateList, todolists.ListDetail](r.Context(), h.bus,
		todolists.CreateList{OwnerID: owner, Title: req.Title})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToListDetailResponse(detail))
}

// ListLists handles GET /api/v1/todolists.
func (h *ToDoListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	page, limit, sort, err := pagingParams(r, h.paging.DefaultLimit)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	result, err := bus.Invoke[todolists.ListLists, todolists.ListPage](r.Context(), h.bus,
		todolists.ListLists{
			OwnerID:       owner,
			Page:          page,
			Limit:         limit,
			Sort:          sort,
			TitleContains: r.URL.Query().Get("title_contains"),
		})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListListResponse(result))
}

// GetList handles GET /api/v1/todolists/{listId}.
func (h *ToDoListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	detail, err := bus.Invoke[todolists.GetList, todolists.ListDetail](r.Context(), h.bus,
		todolists.GetList{OwnerID: owner, ListID: chi.URLParam(r, "listId")})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListDetailResponse(detail))
}

// RenameList handles PATCH /api/v1/todolists/{listId}.
func (h *ToDoListHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.RenameListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	detail, err := bus.Invoke[todolists.RenameList, todolists.ListDetail](r.Context(), h.bus,
		todolists.RenameList{OwnerID: owner, ListID: chi.URLParam(r, "listId"), Title: req.Title})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListDetailResponse(detail))
}

// DeleteList handles DELETE /api/v1/todolists/{listId}.
func (h *ToDoListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	_, err = bus.Invoke[todolists.DeleteList, struct{}](r.Context(), h.bus,
		todolists.DeleteList{OwnerID: owner, ListID: chi.URLParam(r, "listId")})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/v1/todolists/{listId}/items.
func (h *ToDoListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.AddItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := bus.Invoke[todolists.AddItem, todolists.TodoItem](r.Context(), h.bus,
		todolists.AddItem{OwnerID: owner, ListID: chi.URLParam(r, "listId"), Title: req.Title})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTodoItemResponse(item))
}

// AddItems handles POST /api/v1/todolists/{listId}/items/bulk. The response
// always reports per-title outcomes; the call fails as a whole only when the
// list cannot be loaded or saved.
func (h *ToDoListHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.AddItemsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := bus.Invoke[todolists.AddItems, todolists.BulkAddResult](r.Context(), h.bus,
		todolists.AddItems{OwnerID: owner, ListID: chi.URLParam(r, "listId"), Titles: req.Titles})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBulkAddResponse(result))
}

// RenameItem handles PATCH /api/v1/todolists/{listId}/items/{todoId}.
func (h *ToDoListHandler) RenameItem(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.RenameItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := bus.Invoke[todolists.RenameItem, todolists.TodoItem](r.Context(), h.bus,
		todolists.RenameItem{
			OwnerID: owner,
			ListID:  chi.URLParam(r, "listId"),
			TodoID:  chi.URLParam(r, "todoId"),
			Title:   req.Title,
		})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoItemResponse(item))
}

// RemoveItem handles DELETE /api/v1/todolists/{listId}/items/{todoId}.
func (h *ToDoListHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	_, err = bus.Invoke[todolists.RemoveItem, struct{}](r.Context(), h.bus,
		todolists.RemoveItem{
			OwnerID: owner,
			ListID:  chi.URLParam(r, "listId"),
			TodoID:  chi.URLParam(r, "todoId"),
		})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteItem handles POST /api/v1/todolists/{listId}/items/{todoId}/complete.
// Completing an already completed item succeeds without changing it.
func (h *ToDoListHandler) CompleteItem(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	item, err := bus.Invoke[todolists.CompleteItem, todolists.TodoItem](r.Context(), h.bus,
		todolists.CompleteItem{
			OwnerID: owner,
			ListID:  chi.URLParam(r, "listId"),
			TodoID:  chi.URLParam(r, "todoId"),
		})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoItemResponse(item))
}

// ReopenItem handles DELETE /api/v1/todolists/{listId}/items/{todoId}/complete.
func (h *ToDoListHandler) ReopenItem(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	item, err := bus.Invoke[todolists.ReopenItem, todolists.TodoItem](r.Context(), h.bus,
		todolists.ReopenItem{
			OwnerID: owner,
			ListID:  chi.URLParam(r, "listId"),
			TodoID:  chi.URLParam(r, "todoId"),
		})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoItemResponse(item))
}
