package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"homekeeper/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID returns the user or nil when no such row exists.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// List returns users ordered by id. take <= 0 means no limit.
func (r *UserRepository) List(ctx context.Context, skip, take int) ([]model.User, error) {
	db := r.db.WithContext(ctx).Order("id ASC")
	if skip > 0 {
		db = db.Offset(skip)
	}
	if take > 0 {
		db = db.Limit(take)
	}

	var users []model.User
	if err := db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update applies a partial column set to the user and returns the fresh row,
// or nil when the target does not exist.
func (r *UserRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.First(&user, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(changes) == 0 {
		return &user, nil
	}
	if err := db.Model(&user).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

// Delete removes the user and reports whether a row was deleted.
func (r *UserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
