// Package storage implements the repository ports on PostgreSQL through
// GORM. Rows are flat persistence models; mapping to and from the domain
// aggregates happens here, never in the domain packages. Optimistic
// concurrency uses a version column updated with compare-and-set writes.
package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskfolio/taskfolio/internal/domain/todolist"
	"github.com/taskfolio/taskfolio/internal/domain/user"
)

type userRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"size:254;not null;uniqueIndex"`
	UserName  string    `gorm:"size:50;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

type listRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"size:200;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null"`
	Todos     []todoRow `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

func (listRow) TableName() string { return "todo_lists" }

type todoRow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ListID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"not null"`
	Title       string    `gorm:"size:200;not null"`
	Completed   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
}

func (todoRow) TableName() string { return "todo_items" }

func toUserRow(u *user.User) userRow {
	return userRow{
		ID:        u.ID().UUID(),
		Email:     u.Email().String(),
		UserName:  u.Name().String(),
		CreatedAt: u.CreatedAt(),
		Version:   u.Version(),
	}
}

func (r userRow) toDomain() (*user.User, error) {
	id, err := user.ParseUserID(r.ID.String())
	if err != nil {
		return nil, fmt.Errorf("user row %s: %w", r.ID, err)
	}
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return nil, fmt.Errorf("user row %s: %w", r.ID, err)
	}
	name, err := user.NewName(r.UserName)
	if err != nil {
		return nil, fmt.Errorf("user row %s: %w", r.ID, err)
	}
	return user.Rehydrate(id, email, name, r.CreatedAt.UTC(), r.Version), nil
}

func toListRow(l *todolist.List) listRow {
	todos := l.Todos()
	rows := make([]todoRow, 0, len(todos))
	for i, td := range todos {
		rows = append(rows, todoRow{
			ID:          td.ID().UUID(),
			ListID:      l.ID().UUID(),
			Position:    i,
			Title:       td.Title().String(),
			Completed:   td.IsCompleted(),
			CreatedAt:   td.CreatedAt(),
			CompletedAt: td.CompletedAt(),
		})
	}
	return listRow{
		ID:        l.ID().UUID(),
		OwnerID:   l.OwnerID().UUID(),
		Title:     l.Title().String(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
		Version:   l.Version(),
		Todos:     rows,
	}
}

func (r listRow) toDomain() (*todolist.List, error) {
	id, err := todolist.ParseListID(r.ID.String())
	if err != nil {
		return nil, fmt.Errorf("list row %s: %w", r.ID, err)
	}
	owner, err := user.ParseUserID(r.OwnerID.String())
	if err != nil {
		return nil, fmt.Errorf("list row %s: %w", r.ID, err)
	}
	title, err := todolist.NewTitle(r.Title)
	if err != nil {
		return nil, fmt.Errorf("list row %s: %w", r.ID, err)
	}

	todos := make([]*todolist.ToDo, 0, len(r.Todos))
	for _, tr := range r.Todos {
		td, err := tr.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list row %s: %w", r.ID, err)
		}
		todos = append(todos, td)
	}
	return todolist.Rehydrate(id, owner, title, todos, r.CreatedAt.UTC(), r.UpdatedAt.UTC(), r.Version), nil
}

func (r todoRow) toDomain() (*todolist.ToDo, error) {
	id, err := todolist.ParseTodoID(r.ID.String())
	if err != nil {
		return nil, fmt.Errorf("todo row %s: %w", r.ID, err)
	}
	title, err := todolist.NewTitle(r.Title)
	if err != nil {
		return nil, fmt.Errorf("todo row %s: %w", r.ID, err)
	}
	var completedAt *time.Time
	if r.CompletedAt != nil {
		at := r.CompletedAt.UTC()
		completedAt = &at
	}
	return todolist.RehydrateToDo(id, title, r.Completed, r.CreatedAt.UTC(), completedAt)
}
