package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/paging"
	"github.com/taskfolio/taskfolio/internal/domain/user"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// Compile-time check that UserRepo implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepo)(nil)

// UserRepo persists the User aggregate. Email and user name uniqueness is
// enforced by unique indexes; violations map to domain.ErrConflict.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates the GORM-backed user repository.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByID(ctx context.Context, id user.UserID) (*user.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.UUID()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", id, err)
	}
	return row.toDomain()
}

func (r *UserRepo) Find(ctx context.Context, criteria user.Criteria) (paging.Result[*user.User], error) {
	query := r.db.WithContext(ctx).Model(&userRow{})
	if s := criteria.EmailContains(); s != "" {
		query = query.Where("email LIKE ? ESCAPE '\\'", containsPattern(s))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return paging.Result[*user.User]{}, fmt.Errorf("counting users: %w", err)
	}

	var rows []userRow
	err := query.
		Order(userOrderClause(criteria.Sort())).
		Limit(criteria.Paging().Limit()).
		Offset(criteria.Paging().Offset()).
		Find(&rows).Error
	if err != nil {
		return paging.Result[*user.User]{}, fmt.Errorf("querying users: %w", err)
	}

	accounts := make([]*user.User, 0, len(rows))
	for _, row := range rows {
		u, err := row.toDomain()
		if err != nil {
			return paging.Result[*user.User]{}, err
		}
		accounts = append(accounts, u)
	}
	return paging.NewResult(accounts, total, criteria.Paging())
}

func (r *UserRepo) Add(ctx context.Context, u *user.User) error {
	row := toUserRow(u)
	row.Version = 1

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %s: email or user name already taken: %w", u.ID(), domain.ErrConflict)
		}
		return fmt.Errorf("inserting user %s: %w", u.ID(), err)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	row := toUserRow(u)

	res := r.db.WithContext(ctx).Model(&userRow{}).
		Where("id = ? AND version = ?", row.ID, u.Version()).
		Updates(map[string]any{
			"email":     row.Email,
			"user_name": row.UserName,
			"version":   u.Version() + 1,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %s: email or user name already taken: %w", u.ID(), domain.ErrConflict)
		}
		return fmt.Errorf("updating user %s: %w", u.ID(), res.Error)
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", row.ID).Count(&exists).Error; err != nil {
			return fmt.Errorf("checking user %s: %w", u.ID(), err)
		}
		if exists == 0 {
			return fmt.Errorf("user %s: %w", u.ID(), domain.ErrNotFound)
		}
		return fmt.Errorf("user %s version %d is stale: %w", u.ID(), u.Version(), domain.ErrConcurrency)
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id user.UserID) error {
	res := r.db.WithContext(ctx).Delete(&userRow{}, "id = ?", id.UUID())
	if res.Error != nil {
		return fmt.Errorf("deleting user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email user.Email) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRow{}).
		Where("email = ?", email.String()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepo) ExistsByName(ctx context.Context, name user.Name) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userRow{}).
		Where("user_name = ?", name.String()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking user name: %w", err)
	}
	return count > 0, nil
}

func userOrderClause(s paging.Sort[user.SortField]) string {
	column := "created_at"
	switch s.Field {
	case user.SortByUserName:
		column = "user_name"
	case user.SortByEmail:
		column = "email"
	}
	if s.Ascending() {
		return column + " ASC"
	}
	return column + " DESC"
}
