package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/paging"
	"github.com/taskfolio/taskfolio/internal/domain/todolist"
	"github.com/taskfolio/taskfolio/internal/domain/user"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// Compile-time check that ToDoListRepo implements ports.ToDoListRepository.
var _ ports.ToDoListRepository = (*ToDoListRepo)(nil)

// ToDoListRepo persists the List aggregate. Each write replaces the
// aggregate as a whole: the list row is updated with compare-and-set on its
// version, and the todo rows are rewritten inside the same transaction.
type ToDoListRepo struct {
	db *gorm.DB
}

// NewToDoListRepo creates the GORM-backed list repository.
func NewToDoListRepo(db *gorm.DB) *ToDoListRepo {
	return &ToDoListRepo{db: db}
}

func (r *ToDoListRepo) GetByID(ctx context.Context, id todolist.ListID) (*todolist.List, error) {
	var row listRow
	err := r.db.WithContext(ctx).
		Preload("Todos", orderByPosition).
		First(&row, "id = ?", id.UUID()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading list %s: %w", id, err)
	}
	return row.toDomain()
}

func (r *ToDoListRepo) Find(ctx context.Context, criteria todolist.Criteria) (paging.Result[*todolist.List], error) {
	query := r.db.WithContext(ctx).
		Model(&listRow{}).
		Where("owner_id = ?", criteria.Owner().UUID())
	if s := criteria.TitleContains(); s != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", containsPattern(s))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return paging.Result[*todolist.List]{}, fmt.Errorf("counting lists: %w", err)
	}

	var rows []listRow
	err := query.
		Order(listOrderClause(criteria.Sort())).
		Limit(criteria.Paging().Limit()).
		Offset(criteria.Paging().Offset()).
		Preload("Todos", orderByPosition).
		Find(&rows).Error
	if err != nil {
		return paging.Result[*todolist.List]{}, fmt.Errorf("querying lists: %w", err)
	}

	lists := make([]*todolist.List, 0, len(rows))
	for _, row := range rows {
		list, err := row.toDomain()
		if err != nil {
			return paging.Result[*todolist.List]{}, err
		}
		lists = append(lists, list)
	}
	return paging.NewResult(lists, total, criteria.Paging())
}

func (r *ToDoListRepo) Add(ctx context.Context, list *todolist.List) error {
	row := toListRow(list)
	row.Version = 1

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("list %s: %w", list.ID(), domain.ErrConflict)
		}
		return fmt.Errorf("inserting list %s: %w", list.ID(), err)
	}
	return nil
}

func (r *ToDoListRepo) Update(ctx context.Context, list *todolist.List) error {
	row := toListRow(list)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Compare-and-set on the aggregate's version. Zero rows affected
		// means either the row is gone or another writer got there first.
		res := tx.Model(&listRow{}).
			Where("id = ? AND version = ?", row.ID, list.Version()).
			Updates(map[string]any{
				"title":      row.Title,
				"updated_at": row.UpdatedAt,
				"version":    list.Version() + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("updating list %s: %w", list.ID(), res.Error)
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&listRow{}).Where("id = ?", row.ID).Count(&exists).Error; err != nil {
				return fmt.Errorf("checking list %s: %w", list.ID(), err)
			}
			if exists == 0 {
				return fmt.Errorf("list %s: %w", list.ID(), domain.ErrNotFound)
			}
			return fmt.Errorf("list %s version %d is stale: %w", list.ID(), list.Version(), domain.ErrConcurrency)
		}

		// The todo collection is rewritten wholesale; it is capped at
		// todolist.MaxTodos rows so the rewrite stays cheap.
		if err := tx.Where("list_id = ?", row.ID).Delete(&todoRow{}).Error; err != nil {
			return fmt.Errorf("clearing todos of list %s: %w", list.ID(), err)
		}
		if len(row.Todos) > 0 {
			if err := tx.Create(&row.Todos).Error; err != nil {
				return fmt.Errorf("inserting todos of list %s: %w", list.ID(), err)
			}
		}
		return nil
	})
}

func (r *ToDoListRepo) Delete(ctx context.Context, id todolist.ListID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id.UUID()).Delete(&todoRow{}).Error; err != nil {
			return fmt.Errorf("deleting todos of list %s: %w", id, err)
		}
		res := tx.Delete(&listRow{}, "id = ?", id.UUID())
		if res.Error != nil {
			return fmt.Errorf("deleting list %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func (r *ToDoListRepo) DeleteByOwner(ctx context.Context, owner user.UserID) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&listRow{}).Select("id").Where("owner_id = ?", owner.UUID())
		if err := tx.Where("list_id IN (?)", sub).Delete(&todoRow{}).Error; err != nil {
			return fmt.Errorf("deleting todos of owner %s: %w", owner, err)
		}
		res := tx.Where("owner_id = ?", owner.UUID()).Delete(&listRow{})
		if res.Error != nil {
			return fmt.Errorf("deleting lists of owner %s: %w", owner, res.Error)
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func listOrderClause(s paging.Sort[todolist.SortField]) string {
	column := "updated_at"
	switch s.Field {
	case todolist.SortByTitle:
		column = "LOWER(title)"
	case todolist.SortByCreatedAt:
		column = "created_at"
	}
	if s.Ascending() {
		return column + " ASC"
	}
	return column + " DESC"
}
