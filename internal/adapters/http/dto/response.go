// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/taskfolio/taskfolio/internal/app/suggestions"
	"github.com/taskfolio/taskfolio/internal/app/todolists"
	"github.com/taskfolio/taskfolio/internal/app/users"
	"github.com/taskfolio/taskfolio/internal/domain/paging"
)

// PaginationInfo echoes paging metadata back to the client on list responses.
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func toPagination[T any](page paging.Result[T]) PaginationInfo {
	return PaginationInfo{
		Page:       page.CurrentPage,
		Limit:      page.Limit,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

// UserResponse represents a single user in HTTP responses.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	UserName  string `json:"user_name"`
	CreatedAt string `json:"created_at"`
}

// UserListResponse represents one page of users in HTTP responses.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// ToUserResponse converts a user projection to an HTTP response DTO.
func ToUserResponse(a users.Account) UserResponse {
	return UserResponse{
		ID:        a.ID,
		Email:     a.Email,
		UserName:  a.UserName,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

// ToUserListResponse converts a page of user projections to an HTTP list
// response DTO.
func ToUserListResponse(page users.AccountPage) UserListResponse {
	items := make([]UserResponse, len(page.Items))
	for i, a := range page.Items {
		items[i] = ToUserResponse(a)
	}
	return UserListResponse{Users: items, Pagination: toPagination(page)}
}

// ListSummaryResponse represents a todo list without its items.
type ListSummaryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	TodoCount int    `json:"todo_count"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListDetailResponse represents a todo list including its items in
// insertion order.
type ListDetailResponse struct {
	ListSummaryResponse
	Items []TodoItemResponse `json:"items"`
}

// ListListResponse represents one page of todo lists in HTTP responses.
type ListListResponse struct {
	Lists      []ListSummaryResponse `json:"lists"`
	Pagination PaginationInfo        `json:"pagination"`
}

// TodoItemResponse represents a single todo in HTTP responses.
type TodoItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// ToListSummaryResponse converts a list projection to an HTTP response DTO.
func ToListSummaryResponse(s todolists.ListSummary) ListSummaryResponse {
	return ListSummaryResponse{
		ID:        s.ID,
		Title:     s.Title,
		TodoCount: s.TodoCount,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

// ToListDetailResponse converts a full list projection to an HTTP response DTO.
func ToListDetailResponse(d todolists.ListDetail) ListDetailResponse {
	items := make([]TodoItemResponse, len(d.Items))
	for i, td := range d.Items {
		items[i] = ToTodoItemResponse(td)
	}
	return ListDetailResponse{
		ListSummaryResponse: ToListSummaryResponse(d.ListSummary),
		Items:               items,
	}
}

// ToListListResponse converts a page of list projections to an HTTP list
// response DTO.
func ToListListResponse(page todolists.ListPage) ListListResponse {
	items := make([]ListSummaryResponse, len(page.Items))
	for i, s := range page.Items {
		items[i] = ToListSummaryResponse(s)
	}
	return ListListResponse{Lists: items, Pagination: toPagination(page)}
}

// ToTodoItemResponse converts a todo projection to an HTTP response DTO.
func ToTodoItemResponse(td todolists.TodoItem) TodoItemResponse {
	resp := TodoItemResponse{
		ID:          td.ID,
		Title:       td.Title,
		IsCompleted: td.IsCompleted,
		CreatedAt:   td.CreatedAt.Format(time.RFC3339),
	}
	if td.CompletedAt != nil {
		resp.CompletedAt = td.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

// BulkAddItemsResponse represents the result of a bulk add operation.
// It includes both accepted items and per-title errors.
type BulkAddItemsResponse struct {
	Added     []TodoItemResponse `json:"added"`
	Errors    []BulkAddErrorItem `json:"errors"`
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// BulkAddErrorItem represents a single rejected title within a bulk add.
type BulkAddErrorItem struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ToBulkAddResponse converts a todolists.BulkAddResult to an HTTP response DTO.
func ToBulkAddResponse(result todolists.BulkAddResult) BulkAddItemsResponse {
	added := make([]TodoItemResponse, len(result.Added))
	for i, td := range result.Added {
		added[i] = ToTodoItemResponse(td)
	}

	errs := make([]BulkAddErrorItem, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = BulkAddErrorItem{
			Title:   e.Title,
			Message: e.Err.Error(),
		}
	}

	return BulkAddItemsResponse{
		Added:     added,
		Errors:    errs,
		Total:     len(result.Added) + len(result.Errors),
		Succeeded: len(result.Added),
		Failed:    len(result.Errors),
	}
}

// SuggestionsResponse represents AI item suggestions in HTTP responses.
type SuggestionsResponse struct {
	ListID      string   `json:"list_id"`
	Suggestions []string `json:"suggestions"`
}

// ToSuggestionsResponse converts a suggestions result to an HTTP response DTO.
func ToSuggestionsResponse(s suggestions.Suggestions) SuggestionsResponse {
	titles := s.Titles
	if titles == nil {
		titles = []string{}
	}
	return SuggestionsResponse{ListID: s.ListID, Suggestions: titles}
}
