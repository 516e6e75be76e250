package dto

import (
	"strings"

	"github.com/taskfolio/taskfolio/internal/domain"
)

const msgRequired = "is required"

// Request validation here covers only shape: required fields present,
// collections non-empty. Content rules (title length, email format) live in
// the domain value objects and surface as the same ValidationError type.

// RegisterUserRequest represents the JSON body for registering a user.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *RegisterUserRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = msgRequired
	}
	if strings.TrimSpace(r.UserName) == "" {
		fields["user_name"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// RenameUserRequest represents the JSON body for changing a user's name.
type RenameUserRequest struct {
	UserName string `json:"user_name"`
}

// Validate checks that required fields are present.
func (r *RenameUserRequest) Validate() error {
	if strings.TrimSpace(r.UserName) == "" {
		return domain.NewValidationError("user_name", msgRequired)
	}
	return nil
}

// CreateListRequest represents the JSON body for creating a todo list.
type CreateListRequest struct {
	Title string `json:"title"`
}

// Validate checks that required fields are present.
func (r *CreateListRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return domain.NewValidationError("title", msgRequired)
	}
	return nil
}

// RenameListRequest represents the JSON body for renaming a todo list.
type RenameListRequest struct {
	Title string `json:"title"`
}

// Validate checks that required fields are present.
func (r *RenameListRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return domain.NewValidationError("title", msgRequired)
	}
	return nil
}

// AddItemRequest represents the JSON body for adding one todo to a list.
type AddItemRequest struct {
	Title string `json:"title"`
}

// Validate checks that required fields are present.
func (r *AddItemRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return domain.NewValidationError("title", msgRequired)
	}
	return nil
}

// AddItemsRequest represents the JSON body for bulk-adding todos to a list.
// Individual titles are validated per item by the application service; an
// invalid title rejects that item, not the whole request.
type AddItemsRequest struct {
	Titles []string `json:"titles"`
}

// Validate checks that the titles collection is present and non-empty.
func (r *AddItemsRequest) Validate() error {
	if len(r.Titles) == 0 {
		return domain.NewValidationError("titles", "must contain at least one title")
	}
	return nil
}

// RenameItemRequest represents the JSON body for renaming a todo.
type RenameItemRequest struct {
	Title string `json:"title"`
}

// Validate checks that required fields are present.
func (r *RenameItemRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return domain.NewValidationError("title", msgRequired)
	}
	return nil
}
